package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"firesafety-backend/internal/app"
)

type TipHandler struct {
	tips *app.TipService
}

type tipRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewTipHandler(tips *app.TipService) *TipHandler {
	return &TipHandler{tips: tips}
}

func (h *TipHandler) Create(c *gin.Context) {
	var req tipRequest
	_ = c.ShouldBindJSON(&req)

	tip, err := h.tips.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		if isTipValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create fire safety tip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Fire safety tip created successfully",
		"data":    tip,
	})
}

func (h *TipHandler) List(c *gin.Context) {
	tips, err := h.tips.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve fire safety tips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(tips),
		"data":    tips,
	})
}

func (h *TipHandler) Get(c *gin.Context) {
	tip, err := h.tips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, app.ErrTipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Fire safety tip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve fire safety tip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": tip})
}

func (h *TipHandler) Update(c *gin.Context) {
	var req tipRequest
	_ = c.ShouldBindJSON(&req)

	tip, err := h.tips.Update(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTipNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Fire safety tip not found"})
		case isTipValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update fire safety tip"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fire safety tip updated successfully",
		"data":    tip,
	})
}

func (h *TipHandler) Delete(c *gin.Context) {
	if err := h.tips.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, app.ErrTipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Fire safety tip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete fire safety tip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fire safety tip deleted successfully",
	})
}

func isTipValidation(err error) bool {
	return errors.Is(err, app.ErrTitleRequired) ||
		errors.Is(err, app.ErrTitleTooLong) ||
		errors.Is(err, app.ErrContentRequired)
}
