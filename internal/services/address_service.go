package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/example/clickkart/internal/models"
)

// ErrAddressNotFound is returned when an operation targets an address id
// absent from the user's collection.
var ErrAddressNotFound = errors.New("address not found")

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// FieldError names one failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field of a rejected input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("invalid address: %s", strings.Join(msgs, "; "))
}

// AddressInput is the full field set accepted when creating an address.
type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Mobile    string `json:"mobile"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Type      string `json:"type"`
	IsDefault bool   `json:"isDefault"`
}

// AddressPatch is a partial update; nil fields keep their prior values.
type AddressPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Mobile    *string `json:"mobile"`
	Line1     *string `json:"line1"`
	Line2     *string `json:"line2"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Pincode   *string `json:"pincode"`
	Type      *string `json:"type"`
	IsDefault *bool   `json:"isDefault"`
}

// AddressService enforces the address-book rules over one user's
// collection: validated inserts, partial updates, and at most one entry
// flagged as default. Every mutation loads the collection, rewrites a
// working copy and commits it in a single Save.
type AddressService struct {
	repo AddressRepo
}

// NewAddressService constructs an AddressService.
func NewAddressService(repo AddressRepo) *AddressService {
	return &AddressService{repo: repo}
}

// List returns the collection in insertion order.
func (s *AddressService) List(userID uuid.UUID) ([]models.Address, error) {
	return s.repo.Load(userID)
}

// Add validates input and inserts a new address. The first address of an
// empty collection becomes default regardless of input; an explicit
// default demotes every existing entry.
func (s *AddressService) Add(userID uuid.UUID, input AddressInput) ([]models.Address, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	addresses, err := s.repo.Load(userID)
	if err != nil {
		return nil, err
	}

	makeDefault := input.IsDefault || len(addresses) == 0
	if makeDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}

	addresses = append(addresses, models.Address{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Mobile:    input.Mobile,
		Line1:     input.Line1,
		Line2:     input.Line2,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		Type:      input.Type,
		IsDefault: makeDefault,
	})

	if err := s.repo.Save(userID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Update applies the non-nil patch fields to the address. Setting
// isDefault true demotes every other entry in the same commit; a false
// value is ignored.
func (s *AddressService) Update(userID, addressID uuid.UUID, patch AddressPatch) ([]models.Address, error) {
	addresses, err := s.repo.Load(userID)
	if err != nil {
		return nil, err
	}

	idx := indexOf(addresses, addressID)
	if idx < 0 {
		return nil, ErrAddressNotFound
	}

	addr := &addresses[idx]
	if patch.FirstName != nil {
		addr.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		addr.LastName = *patch.LastName
	}
	if patch.Mobile != nil {
		addr.Mobile = *patch.Mobile
	}
	if patch.Line1 != nil {
		addr.Line1 = *patch.Line1
	}
	if patch.Line2 != nil {
		addr.Line2 = *patch.Line2
	}
	if patch.City != nil {
		addr.City = *patch.City
	}
	if patch.State != nil {
		addr.State = *patch.State
	}
	if patch.Pincode != nil {
		addr.Pincode = *patch.Pincode
	}
	if patch.Type != nil {
		addr.Type = *patch.Type
	}
	if patch.IsDefault != nil && *patch.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = i == idx
		}
	}

	if err := s.repo.Save(userID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Remove deletes the address. No other entry is promoted: a collection
// with no default after a delete is a valid terminal state.
func (s *AddressService) Remove(userID, addressID uuid.UUID) ([]models.Address, error) {
	addresses, err := s.repo.Load(userID)
	if err != nil {
		return nil, err
	}

	idx := indexOf(addresses, addressID)
	if idx < 0 {
		return nil, ErrAddressNotFound
	}

	addresses = append(addresses[:idx], addresses[idx+1:]...)
	if err := s.repo.Save(userID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// SetDefault makes exactly the matching address default. Existence is
// checked before any flag moves, so a failed call never strips the
// current default.
func (s *AddressService) SetDefault(userID, addressID uuid.UUID) ([]models.Address, error) {
	addresses, err := s.repo.Load(userID)
	if err != nil {
		return nil, err
	}

	if indexOf(addresses, addressID) < 0 {
		return nil, ErrAddressNotFound
	}

	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == addressID
	}

	if err := s.repo.Save(userID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func indexOf(addresses []models.Address, id uuid.UUID) int {
	for i := range addresses {
		if addresses[i].ID == id {
			return i
		}
	}
	return -1
}

func validateInput(input AddressInput) error {
	var fields []FieldError
	if input.FirstName == "" {
		fields = append(fields, FieldError{Field: "firstName", Message: "First name required"})
	}
	if input.Mobile == "" {
		fields = append(fields, FieldError{Field: "mobile", Message: "Mobile required"})
	}
	if input.Line1 == "" {
		fields = append(fields, FieldError{Field: "line1", Message: "Address line 1 required"})
	}
	if input.City == "" {
		fields = append(fields, FieldError{Field: "city", Message: "City required"})
	}
	if !pincodeRe.MatchString(input.Pincode) {
		fields = append(fields, FieldError{Field: "pincode", Message: "Valid 6-digit pincode required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
