package model

import domain "Campos-App/internal/domain/model"

// CamposListResponse GET /api/campos response.
type CamposListResponse struct {
	Campos []domain.Campo `json:"campos"`
	Count  int            `json:"count"`
	// Stale is set when the catalog came from the cache because the
	// remote store was unreachable.
	Stale bool `json:"stale,omitempty"`
}

// ContribucionesResponse GET /api/campos/:id/contribuciones response.
type ContribucionesResponse struct {
	Contribuciones []domain.Contribucion `json:"contribuciones"`
	Stale          bool                  `json:"stale,omitempty"`
}

// UpdateCampoRequest PUT /api/campos/:id request body. Only present
// fields are applied.
type UpdateCampoRequest struct {
	Nombre       *string  `json:"nombre,omitempty"`
	Localidad    *string  `json:"localidad,omitempty"`
	Provincia    *string  `json:"provincia,omitempty"`
	FotoURL      *string  `json:"foto_url,omitempty"`
	Direccion    *string  `json:"direccion,omitempty"`
	CodigoPostal *string  `json:"codigo_postal,omitempty"`
	Superficie   *string  `json:"superficie,omitempty"`
	Tipo         *string  `json:"tipo,omitempty"`
	Latitud      *float64 `json:"latitud,omitempty"`
	Longitud     *float64 `json:"longitud,omitempty"`
}

// ToUpdate converts the request into the domain update payload.
func (r *UpdateCampoRequest) ToUpdate() *domain.CampoUpdate {
	return &domain.CampoUpdate{
		Nombre:       r.Nombre,
		Localidad:    r.Localidad,
		Provincia:    r.Provincia,
		FotoURL:      r.FotoURL,
		Direccion:    r.Direccion,
		CodigoPostal: r.CodigoPostal,
		Superficie:   r.Superficie,
		Tipo:         r.Tipo,
		Latitud:      r.Latitud,
		Longitud:     r.Longitud,
	}
}

// MarkVisitRequest POST /api/campos/:id/visita request body. When the
// position is supplied the proximity rule is enforced against it;
// otherwise a one-shot fix is requested.
type MarkVisitRequest struct {
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
}

// VisitResponse visit mutation response.
type VisitResponse struct {
	Status string `json:"status"`
}

// VisitStatusResponse GET /api/campos/:id/visita response.
type VisitStatusResponse struct {
	Visited bool `json:"visited"`
}
