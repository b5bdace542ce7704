package handlers

import (
	"errors"
	"net/http"

	"flowtask/internal/models"
	"flowtask/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ListHandler struct {
	db          *gorm.DB
	listService services.ListService
}

func NewListHandler(db *gorm.DB, listService services.ListService) *ListHandler {
	return &ListHandler{db: db, listService: listService}
}

// GetLists returns every list ordered by creation time. There is no owner
// filtering on this surface.
func (h *ListHandler) GetLists(c *gin.Context) {
	lists, err := h.listService.GetLists(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if lists == nil {
		lists = []models.List{}
	}
	c.JSON(http.StatusOK, lists)
}

func (h *ListHandler) CreateList(c *gin.Context) {
	var input struct {
		Title          string `json:"title" binding:"required"`
		UserIdentifier string `json:"user_identifier"`
		IsDefault      bool   `json:"is_default"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := models.List{
		Title:          input.Title,
		UserIdentifier: input.UserIdentifier,
		IsDefault:      input.IsDefault,
	}
	if err := h.listService.CreateList(h.db, &list); err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, []models.List{list})
}
