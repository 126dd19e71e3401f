package model

import domain "Campos-App/internal/domain/model"

// ProgressResponse GET /api/progress and claim responses.
type ProgressResponse struct {
	Level               int      `json:"level"`
	CurrentXP           int      `json:"current_xp"`
	XPToNextLevel       int      `json:"xp_to_next_level"`
	CamposVisitados     int      `json:"campos_visitados"`
	ProvinciasVisitadas int      `json:"provincias_visitadas"`
	DiasConsecutivos    int      `json:"dias_consecutivos"`
	DailyXP             int      `json:"daily_xp"`
	HasClaimedToday     bool     `json:"has_claimed_today"`
	NewlyUnlocked       []string `json:"newly_unlocked,omitempty"`
}

// NewProgressResponse maps a snapshot onto the wire shape.
func NewProgressResponse(s *domain.ProgressSnapshot) *ProgressResponse {
	return &ProgressResponse{
		Level:               s.Level,
		CurrentXP:           s.CurrentXP,
		XPToNextLevel:       s.XPToNextLevel,
		CamposVisitados:     s.CamposVisitados,
		ProvinciasVisitadas: s.ProvinciasVisitadas,
		DiasConsecutivos:    s.DiasConsecutivos,
		DailyXP:             s.DailyXP,
		HasClaimedToday:     s.HasClaimedToday,
		NewlyUnlocked:       s.NewlyUnlocked,
	}
}

// PerfilResponse GET /api/perfil response.
type PerfilResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	IsAdmin   bool   `json:"is_admin"`
}

// UpdatePerfilRequest PUT /api/perfil request body.
type UpdatePerfilRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellidos string `json:"apellidos"`
}

// PositionUpdateRequest POST /api/location request body: platform glue
// feeding a fix into the region monitor.
type PositionUpdateRequest struct {
	// Not binding-required: 0.0 is a legal coordinate. Range validation
	// happens against the domain rules instead.
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	AccuracyMeters float64 `json:"accuracy_meters"`
}

// AutoCheckinRequest POST /api/geofence request body.
type AutoCheckinRequest struct {
	Enabled bool `json:"enabled"`
}
