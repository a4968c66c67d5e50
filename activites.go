package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// -----------------------------
// Sport-activity participations
// -----------------------------

type CreateActiviteRequest struct {
	Matricule      string `json:"matricule" binding:"required"`
	Nom            string `json:"nom" binding:"required"`
	Prenom         string `json:"prenom" binding:"required"`
	Age            *int   `json:"age"`
	Beneficiaire   string `json:"beneficiaire" binding:"required"`
	TypeActiviteID *uint  `json:"type_activite_id"`
}

func CreateActivite(c *gin.Context) {
	var body CreateActiviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	age, aerr := checkBeneficiaireAge(body.Beneficiaire, body.Age)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	act := ActiviteSportive{
		Matricule:    body.Matricule,
		Nom:          body.Nom,
		Prenom:       body.Prenom,
		Age:          age,
		Beneficiaire: body.Beneficiaire,
	}

	if body.TypeActiviteID != nil {
		var ta TypeActivite
		if err := DB.First(&ta, *body.TypeActiviteID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(c, http.StatusNotFound, "activity type not found")
				return
			}
			internalError(c, err)
			return
		}
		act.TypeActiviteID = &ta.ID
		act.OriginalTypeActiviteID = &ta.ID
	}

	if err := DB.Create(&act).Error; err != nil {
		internalError(c, err)
		return
	}

	go dashboardHub.BroadcastStats()
	c.JSON(http.StatusCreated, act)
}

func resolveActiviteTypeLabel(act *ActiviteSportive) string {
	if act.TypeActivite != nil {
		return act.TypeActivite.Nom + " (En cours)"
	}
	if act.OriginalTypeActiviteID != nil {
		var archived ArchivedTypeActivite
		err := DB.Where("type_id = ?", *act.OriginalTypeActiviteID).
			Order("archived_at desc").First(&archived).Error
		if err == nil {
			return archived.Nom + " (Expiré)"
		}
	}
	return "Non assigné"
}

type activiteResponse struct {
	ActiviteSportive
	TypeActiviteNomEtat string `json:"type_activite_nom_etat"`
}

func GetActivites(c *gin.Context) {
	var acts []ActiviteSportive
	if err := DB.Preload("TypeActivite").Order("date_inscription desc").Find(&acts).Error; err != nil {
		internalError(c, err)
		return
	}

	out := make([]activiteResponse, 0, len(acts))
	for i := range acts {
		out = append(out, activiteResponse{
			ActiviteSportive:    acts[i],
			TypeActiviteNomEtat: resolveActiviteTypeLabel(&acts[i]),
		})
	}
	c.JSON(http.StatusOK, out)
}

func GetActivite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity id")
		return
	}

	var act ActiviteSportive
	if err := DB.Preload("TypeActivite").First(&act, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			jsonError(c, http.StatusNotFound, "activity participation not found")
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, activiteResponse{
		ActiviteSportive:    act,
		TypeActiviteNomEtat: resolveActiviteTypeLabel(&act),
	})
}

type UpdateActiviteRequest struct {
	Matricule      *string `json:"matricule"`
	Nom            *string `json:"nom"`
	Prenom         *string `json:"prenom"`
	Age            *int    `json:"age"`
	Beneficiaire   *string `json:"beneficiaire"`
	TypeActiviteID *uint   `json:"type_activite_id"`
	ClearType      bool    `json:"clear_type"`
}

func UpdateActivite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity id")
		return
	}

	var body UpdateActiviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var act ActiviteSportive
	if err := DB.Preload("TypeActivite").First(&act, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			jsonError(c, http.StatusNotFound, "activity participation not found")
			return
		}
		internalError(c, err)
		return
	}

	if body.Beneficiaire != nil {
		if *body.Beneficiaire == "enfant" && body.Age == nil && act.Age == nil {
			jsonError(c, http.StatusBadRequest, "age is required for beneficiary 'enfant'")
			return
		}
		act.Beneficiaire = *body.Beneficiaire
	}
	if body.Age != nil {
		act.Age = body.Age
	}
	if act.Beneficiaire == "Agent TT" {
		act.Age = nil
	}

	if body.TypeActiviteID != nil {
		var ta TypeActivite
		if err := DB.First(&ta, *body.TypeActiviteID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(c, http.StatusNotFound, "activity type not found")
				return
			}
			internalError(c, err)
			return
		}
		act.TypeActiviteID = &ta.ID
		act.TypeActivite = &ta
		act.OriginalTypeActiviteID = &ta.ID
	} else if body.ClearType {
		act.TypeActiviteID = nil
		act.TypeActivite = nil
	}

	if body.Matricule != nil {
		act.Matricule = *body.Matricule
	}
	if body.Nom != nil {
		act.Nom = *body.Nom
	}
	if body.Prenom != nil {
		act.Prenom = *body.Prenom
	}

	if err := DB.Save(&act).Error; err != nil {
		internalError(c, err)
		return
	}

	go dashboardHub.BroadcastStats()
	c.JSON(http.StatusOK, act)
}

// GetActivitesByType lists the participations still attached to a live
// activity type.
func GetActivitesByType(c *gin.Context) {
	typeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity type id")
		return
	}

	var acts []ActiviteSportive
	if err := DB.Preload("TypeActivite").Where("type_activite_id = ?", typeID).Find(&acts).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, acts)
}

func DeleteActivite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid activity id")
		return
	}

	res := DB.Delete(&ActiviteSportive{}, id)
	if res.Error != nil {
		internalError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		jsonError(c, http.StatusNotFound, "activity participation not found")
		return
	}

	go dashboardHub.BroadcastStats()
	c.JSON(http.StatusOK, gin.H{"message": "activity participation deleted"})
}
