package controllers

import (
	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type DropdownController struct {
	service *services.DropdownService
}

func NewDropdownController(service *services.DropdownService) *DropdownController {
	return &DropdownController{service: service}
}

func (dc *DropdownController) GetOptions(c *gin.Context) {
	options, err := dc.service.GetOptions()
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, options)
}

func (dc *DropdownController) GetDisplayOptions(c *gin.Context) {
	options, err := dc.service.GetDisplayOptions(c.Param("kind"))
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, options)
}

func (dc *DropdownController) AddOptionValue(c *gin.Context) {
	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	options, err := dc.service.AddOptionValue(c.Param("kind"), body.Value)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, options)
}
