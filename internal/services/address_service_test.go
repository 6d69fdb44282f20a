package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/clickkart/internal/models"
)

func newTestService() (*AddressService, uuid.UUID) {
	return NewAddressService(NewMemoryAddressRepo()), uuid.New()
}

func validInput() AddressInput {
	return AddressInput{
		FirstName: "Asha",
		LastName:  "Verma",
		Mobile:    "9876543210",
		Line1:     "14 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
		Type:      "home",
	}
}

func defaultCount(addresses []models.Address) int {
	count := 0
	for _, a := range addresses {
		if a.IsDefault {
			count++
		}
	}
	return count
}

func TestAddFirstAddressBecomesDefault(t *testing.T) {
	svc, userID := newTestService()

	addresses, err := svc.Add(userID, validInput())
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.True(t, addresses[0].IsDefault)
}

func TestAddSecondAddressStaysNonDefault(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Add(userID, validInput())
	require.NoError(t, err)

	second := validInput()
	second.FirstName = "Ravi"
	addresses, err := svc.Add(userID, second)
	require.NoError(t, err)

	require.Len(t, addresses, 2)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)
}

func TestAddExplicitDefaultDemotesOthers(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Add(userID, validInput())
	require.NoError(t, err)

	second := validInput()
	second.FirstName = "Ravi"
	second.IsDefault = true
	addresses, err := svc.Add(userID, second)
	require.NoError(t, err)

	assert.Equal(t, 1, defaultCount(addresses))
	assert.True(t, addresses[1].IsDefault)
}

func TestAddValidationListsEveryFailingField(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Add(userID, AddressInput{Pincode: "12"})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	fields := make([]string, len(validation.Fields))
	for i, f := range validation.Fields {
		fields[i] = f.Field
	}
	assert.ElementsMatch(t, []string{"firstName", "mobile", "line1", "city", "pincode"}, fields)

	addresses, err := svc.List(userID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestAddRejectsNonNumericPincode(t *testing.T) {
	svc, userID := newTestService()

	input := validInput()
	input.Pincode = "56000a"
	_, err := svc.Add(userID, input)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 1)
	assert.Equal(t, "pincode", validation.Fields[0].Field)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, userID := newTestService()

	addresses, err := svc.Add(userID, validInput())
	require.NoError(t, err)
	id := addresses[0].ID

	city := "Mysuru"
	addresses, err = svc.Update(userID, id, AddressPatch{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Mysuru", addresses[0].City)
	assert.Equal(t, "Asha", addresses[0].FirstName)
	assert.Equal(t, "560001", addresses[0].Pincode)
}

func TestUpdateSetDefaultDemotesOthers(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Add(userID, validInput())
	require.NoError(t, err)

	second := validInput()
	second.FirstName = "Ravi"
	addresses, err := svc.Add(userID, second)
	require.NoError(t, err)

	isDefault := true
	addresses, err = svc.Update(userID, addresses[1].ID, AddressPatch{IsDefault: &isDefault})
	require.NoError(t, err)

	assert.Equal(t, 1, defaultCount(addresses))
	assert.False(t, addresses[0].IsDefault)
	assert.True(t, addresses[1].IsDefault)
}

func TestUpdateUnknownIDFails(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Add(userID, validInput())
	require.NoError(t, err)

	city := "Mysuru"
	_, err = svc.Update(userID, uuid.New(), AddressPatch{City: &city})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestRemoveDoesNotPromoteAnotherDefault(t *testing.T) {
	svc, userID := newTestService()

	addresses, err := svc.Add(userID, validInput())
	require.NoError(t, err)
	defaultID := addresses[0].ID

	second := validInput()
	second.FirstName = "Ravi"
	_, err = svc.Add(userID, second)
	require.NoError(t, err)

	addresses, err = svc.Remove(userID, defaultID)
	require.NoError(t, err)

	require.Len(t, addresses, 1)
	assert.Equal(t, 0, defaultCount(addresses))
}

func TestRemoveUnknownIDFails(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Remove(userID, uuid.New())
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestSetDefaultMovesTheFlag(t *testing.T) {
	svc, userID := newTestService()

	_, err := svc.Add(userID, validInput())
	require.NoError(t, err)

	second := validInput()
	second.FirstName = "Ravi"
	addresses, err := svc.Add(userID, second)
	require.NoError(t, err)

	addresses, err = svc.SetDefault(userID, addresses[1].ID)
	require.NoError(t, err)

	assert.Equal(t, 1, defaultCount(addresses))
	assert.True(t, addresses[1].IsDefault)
}

func TestSetDefaultUnknownIDLeavesCurrentDefault(t *testing.T) {
	svc, userID := newTestService()

	addresses, err := svc.Add(userID, validInput())
	require.NoError(t, err)
	defaultID := addresses[0].ID

	_, err = svc.SetDefault(userID, uuid.New())
	assert.ErrorIs(t, err, ErrAddressNotFound)

	addresses, err = svc.List(userID)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, defaultID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
}

// The invariant the whole manager exists for: after any sequence of
// successful mutations, at most one entry is default.
func TestDefaultInvariantHoldsAcrossMixedSequence(t *testing.T) {
	svc, userID := newTestService()

	check := func() []models.Address {
		addresses, err := svc.List(userID)
		require.NoError(t, err)
		assert.LessOrEqual(t, defaultCount(addresses), 1)
		return addresses
	}

	first, err := svc.Add(userID, validInput())
	require.NoError(t, err)
	check()

	second := validInput()
	second.FirstName = "Ravi"
	second.IsDefault = true
	_, err = svc.Add(userID, second)
	require.NoError(t, err)
	check()

	third := validInput()
	third.FirstName = "Meera"
	_, err = svc.Add(userID, third)
	require.NoError(t, err)
	addresses := check()

	_, err = svc.SetDefault(userID, addresses[2].ID)
	require.NoError(t, err)
	check()

	_, err = svc.Remove(userID, addresses[2].ID)
	require.NoError(t, err)
	addresses = check()
	assert.Equal(t, 0, defaultCount(addresses))

	_, err = svc.SetDefault(userID, first[0].ID)
	require.NoError(t, err)
	addresses = check()
	assert.Equal(t, 1, defaultCount(addresses))
}
