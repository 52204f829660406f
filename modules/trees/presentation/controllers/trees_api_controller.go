package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/drzewo/drzewo/modules/trees/services"
)

type TreesAPIController struct {
	nearestService *services.NearestService
	logger         *logrus.Logger
	basePath       string
}

func NewTreesAPIController(nearestService *services.NearestService, logger *logrus.Logger) *TreesAPIController {
	return &TreesAPIController{
		nearestService: nearestService,
		logger:         logger,
		basePath:       "/nearest",
	}
}

func (c *TreesAPIController) Key() string {
	return c.basePath
}

func (c *TreesAPIController) Register(r *mux.Router) {
	r.HandleFunc(c.basePath, c.Nearest).Methods(http.MethodGet)
}

type nearbyTreeResponse struct {
	Source    string   `json:"source"`
	ObjectID  int64    `json:"objectid"`
	Common    *string  `json:"common_name"`
	Botanical *string  `json:"botanical_name"`
	Address   *string  `json:"address"`
	Street    *string  `json:"streetname"`
	DBH       *float64 `json:"dbh"`
	Position  *string  `json:"pos"`
	Distance  float64  `json:"distance"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
}

func (c *TreesAPIController) Nearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	latRaw := strings.TrimSpace(q.Get("lat"))
	lngRaw := strings.TrimSpace(q.Get("lng"))
	if latRaw == "" || lngRaw == "" {
		writeJSONError(w, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}
	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil {
		writeJSONError(w, http.StatusBadRequest, "lat and lng must be numbers")
		return
	}

	limit := 0
	if limitRaw := strings.TrimSpace(q.Get("limit")); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	var maxDistanceM *float64
	if distRaw := strings.TrimSpace(q.Get("max_distance_m")); distRaw != "" {
		parsed, err := strconv.ParseFloat(distRaw, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "max_distance_m must be a number")
			return
		}
		maxDistanceM = &parsed
	}

	results, err := c.nearestService.Nearest(r.Context(), lat, lng, limit, maxDistanceM)
	if err != nil {
		if errors.Is(err, services.ErrCoordinatesOutOfBounds) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.logger.WithError(err).Error("nearest query failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]nearbyTreeResponse, 0, len(results))
	for _, row := range results {
		response = append(response, nearbyTreeResponse{
			Source:    row.Source,
			ObjectID:  row.ObjectID,
			Common:    row.Common,
			Botanical: row.Botanical,
			Address:   row.Address,
			Street:    row.Streetname,
			DBH:       row.DBH,
			Position:  row.Position,
			Distance:  row.DistanceM,
			Longitude: row.Longitude,
			Latitude:  row.Latitude,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
