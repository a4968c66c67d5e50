package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// -----------------------------
// Sport-activity types
// -----------------------------

type TypeActiviteRequest struct {
	Nom    string `json:"nom" binding:"required"`
	Status string `json:"status"`
}

func CreateTypeActivite(c *gin.Context) {
	var body TypeActiviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	nom := strings.TrimSpace(body.Nom)
	if nom == "" {
		jsonError(c, http.StatusBadRequest, "activity type name cannot be empty")
		return
	}

	status := strings.TrimSpace(body.Status)
	if status == "" {
		status = "en cours"
	}
	ta := TypeActivite{Nom: nom, Status: status}
	if err := DB.Create(&ta).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ta)
}

// GetTypeActivites only lists live types; archived names are served by
// the archive endpoint.
func GetTypeActivites(c *gin.Context) {
	var types []TypeActivite
	if err := DB.Where("status = ?", "en cours").Find(&types).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func GetTypeActivite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity type id")
		return
	}

	var ta TypeActivite
	if err := DB.First(&ta, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			jsonError(c, http.StatusNotFound, "activity type not found")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, ta)
}

func UpdateTypeActivite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity type id")
		return
	}

	var body TypeActiviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	nom := strings.TrimSpace(body.Nom)
	if nom == "" {
		jsonError(c, http.StatusBadRequest, "activity type name cannot be empty")
		return
	}

	var ta TypeActivite
	if err := DB.First(&ta, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			jsonError(c, http.StatusNotFound, "activity type not found")
			return
		}
		internalError(c, err)
		return
	}

	ta.Nom = nom
	if s := strings.TrimSpace(body.Status); s != "" {
		ta.Status = s
	}
	if err := DB.Save(&ta).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, ta)
}

// DeleteTypeActivite mirrors DeleteTypeClub but skips the archive write
// when a row for this type id already exists.
func DeleteTypeActivite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity type id")
		return
	}
	deletedBy := c.Query("deletedBy")
	if deletedBy == "" {
		deletedBy = "system"
	}

	txErr := DB.Transaction(func(tx *gorm.DB) error {
		var ta TypeActivite
		if err := tx.First(&ta, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return notFound("activity type not found")
			}
			return err
		}

		var existing ArchivedTypeActivite
		err := tx.Where("type_id = ?", ta.ID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			archived := ArchivedTypeActivite{
				TypeID:    ta.ID,
				Nom:       ta.Nom,
				DeletedBy: deletedBy,
			}
			if err := tx.Create(&archived).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Model(&ActiviteSportive{}).Where("type_activite_id = ?", ta.ID).
			Updates(map[string]interface{}{
				"type_activite_id":          nil,
				"original_type_activite_id": ta.ID,
			}).Error; err != nil {
			return err
		}

		ta.Status = "expiré"
		if err := tx.Save(&ta).Error; err != nil {
			return err
		}
		return tx.Delete(&TypeActivite{}, ta.ID).Error
	})
	if txErr != nil {
		respondError(c, txErr)
		return
	}

	go dashboardHub.BroadcastStats()
	c.JSON(http.StatusOK, gin.H{"message": "activity type archived and deleted"})
}
