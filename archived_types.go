package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// -----------------------------
// Archive registries (read-only)
// -----------------------------

func GetArchivedClubTypes(c *gin.Context) {
	var archived []ArchivedTypeClub
	if err := DB.Order("archived_at desc").Find(&archived).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, archived)
}

func GetArchivedActiviteTypes(c *gin.Context) {
	var archived []ArchivedTypeActivite
	if err := DB.Order("archived_at desc").Find(&archived).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, archived)
}
