package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/clickkart/internal/middleware"
	"github.com/example/clickkart/internal/services"
)

// AddressHandler exposes the address book over HTTP. Every successful
// response echoes the full post-mutation collection.
type AddressHandler struct {
	addresses *services.AddressService
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// ListAddresses returns the authenticated user's addresses.
func (h *AddressHandler) ListAddresses(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addresses, err := h.addresses.List(userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"addresses": addresses}})
}

// CreateAddress adds a new address.
func (h *AddressHandler) CreateAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.AddressInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	addresses, err := h.addresses.Add(userID, input)
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"errors":  validation.Fields,
			})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"addresses": addresses},
	})
}

// UpdateAddress applies a partial update to one address.
func (h *AddressHandler) UpdateAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var patch services.AddressPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	addresses, err := h.addresses.Update(userID, addrID, patch)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "address not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"addresses": addresses}})
}

// DeleteAddress removes one address.
func (h *AddressHandler) DeleteAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	addresses, err := h.addresses.Remove(userID, addrID)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "address not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"addresses": addresses}})
}

// SetDefaultAddress marks one address as the default.
func (h *AddressHandler) SetDefaultAddress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	addrID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	addresses, err := h.addresses.SetDefault(userID, addrID)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "address not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"addresses": addresses}})
}
