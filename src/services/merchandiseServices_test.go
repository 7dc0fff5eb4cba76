package services

import (
	"testing"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchandiseCRUD(t *testing.T) {
	service := NewMerchandiseService(newTestDB(t))

	created, err := service.CreateMerchandise(&models.MerchandiseModel{
		Name:     "Replica Amphora",
		Price:    24.50,
		Quantity: 10,
		Category: "Replicas",
	})
	require.NoError(t, err)
	require.NotZero(t, created.Id)
	assert.Equal(t, "EUR", created.Currency)

	loaded, err := service.GetMerchandiseByID(created.Id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 10, loaded.Quantity)

	require.NoError(t, service.DeleteMerchandise(created.Id))

	gone, err := service.GetMerchandiseByID(created.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUpdateQuantity(t *testing.T) {
	service := NewMerchandiseService(newTestDB(t))

	created, err := service.CreateMerchandise(&models.MerchandiseModel{Name: "Mug", Price: 9.90, Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, service.UpdateQuantity(created.Id, 3))

	loaded, err := service.GetMerchandiseByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Quantity)

	err = service.UpdateQuantity(created.Id, -1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	err = service.UpdateQuantity(9999, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestPurchaseDecrementsStock(t *testing.T) {
	service := NewMerchandiseService(newTestDB(t))

	created, err := service.CreateMerchandise(&models.MerchandiseModel{Name: "Poster", Price: 5, Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, service.Purchase(created.Id, 2))

	loaded, err := service.GetMerchandiseByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Quantity)
}

func TestPurchaseRefusesOverselling(t *testing.T) {
	service := NewMerchandiseService(newTestDB(t))

	created, err := service.CreateMerchandise(&models.MerchandiseModel{Name: "Pin", Price: 3, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, service.Purchase(created.Id, 1))

	err = service.Purchase(created.Id, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))

	// Stock never goes negative.
	loaded, err := service.GetMerchandiseByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Quantity)
}

func TestPurchaseValidation(t *testing.T) {
	service := NewMerchandiseService(newTestDB(t))

	err := service.Purchase(1, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	err = service.Purchase(9999, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestSearchMerchandise(t *testing.T) {
	service := NewMerchandiseService(newTestDB(t))

	_, err := service.CreateMerchandise(&models.MerchandiseModel{Name: "Field Notebook", Price: 12})
	require.NoError(t, err)
	_, err = service.CreateMerchandise(&models.MerchandiseModel{
		Name:        "Tote Bag",
		Price:       15,
		Description: strPtr("Printed with a notebook sketch"),
	})
	require.NoError(t, err)

	matched, err := service.SearchMerchandise("notebook")
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestMerchandiseReadsDegradeWithoutStore(t *testing.T) {
	service := NewMerchandiseService(nil)

	items, err := service.GetAllMerchandise()
	require.NoError(t, err)
	assert.Empty(t, items)

	err = service.Purchase(1, 1)
	assert.True(t, apperrors.IsUnavailable(err))
}
