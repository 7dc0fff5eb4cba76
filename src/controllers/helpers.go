package controllers

import (
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) int {
	return middleware.CurrentUserID(c)
}
