package api

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.Dashboard.Dashboard(c.Request.Context(), currentUser(c), c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, d)
}

func (h *handler) listHealthScores(c *gin.Context) {
	scores, err := h.Progress.HealthScores(c.Request.Context(), currentUser(c), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, scores)
}

func (h *handler) computeHealthScore(c *gin.Context) {
	var body struct {
		Date string `json:"date"`
	}
	if err := bindOptionalJSON(c, &body); err != nil {
		h.fail(c, err)
		return
	}
	score, err := h.Progress.ComputeHealthScore(c.Request.Context(), currentUser(c), body.Date)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, score)
}

func (h *handler) streaks(c *gin.Context) {
	standings, err := h.Progress.Streaks(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, standings)
}

func (h *handler) achievements(c *gin.Context) {
	list, err := h.Progress.Achievements(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, list)
}

func (h *handler) resetProgress(c *gin.Context) {
	res, err := h.Progress.ResetProgress(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, res)
}

func (h *handler) analytics(c *gin.Context) {
	a, err := h.Analytics.Analytics(c.Request.Context(), currentUser(c), c.Query("range"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, a)
}
