// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/recommend"
)

// Recommendations handles POST /api/v1/recommendations.
//
// @Summary Rank sightseeing stops from a start point
// @Description Scores every active location by distance, rating, category match, popularity and the user's history and returns the best max_stops (default 3).
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body recommend.Request true "Recommendation request"
// @Success 200 {object} models.APIResponse{data=recommend.Response} "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "INVALID_JSON or VALIDATION_ERROR"
// @Failure 404 {object} models.APIResponse "USER_NOT_FOUND or START_NOT_FOUND"
// @Failure 500 {object} models.APIResponse "RECOMMENDATION_ERROR"
// @Router /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommend.Request
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), req.UserID)
	resp, err := h.recommender.Recommend(ctx, req)
	switch {
	case err == nil:
		respondSuccess(w, r, start, resp)
	case errors.Is(err, recommend.ErrUserNotFound):
		respondError(w, http.StatusNotFound, models.ErrCodeUserNotFound, "User not found", nil)
	case errors.Is(err, recommend.ErrStartNotFound):
		logging.Ctx(ctx).Info().Err(err).Msg("Start point not resolved")
		respondError(w, http.StatusNotFound, models.ErrCodeStartNotFound, "Could not determine the start location", nil)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeRecommendation, "Failed to compute recommendations", err)
	}
}
