package model

// LatLng basic latitude/longitude pair used for distance math.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is inside the WGS84 range.
func (l LatLng) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Campo a field from the remote catalog. Read-only input for the core;
// the catalog is owned by the backend.
type Campo struct {
	ID           string   `json:"id"`
	Nombre       string   `json:"nombre"`
	Localidad    string   `json:"localidad"`
	Provincia    string   `json:"provincia"`
	FotoURL      *string  `json:"foto_url,omitempty"`
	Direccion    string   `json:"direccion"`
	CodigoPostal string   `json:"codigo_postal"`
	Superficie   string   `json:"superficie"`
	Tipo         string   `json:"tipo"`
	Latitud      *float64 `json:"latitud,omitempty"`
	Longitud     *float64 `json:"longitud,omitempty"`
}

// HasValidCoordinates reports whether the campo can be geofenced or mapped.
// Campos without usable coordinates are skipped, never treated as errors.
func (c *Campo) HasValidCoordinates() bool {
	if c.Latitud == nil || c.Longitud == nil {
		return false
	}
	return LatLng{Lat: *c.Latitud, Lng: *c.Longitud}.Valid()
}

// ToLatLng returns the campo coordinate, zero value when absent.
func (c *Campo) ToLatLng() LatLng {
	if c.Latitud == nil || c.Longitud == nil {
		return LatLng{}
	}
	return LatLng{Lat: *c.Latitud, Lng: *c.Longitud}
}

// CampoUpdate partial update payload for the campos table. Only the
// non-nil fields are sent.
type CampoUpdate struct {
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

// Contribucion a user-submitted detail for a campo, visible once approved.
type Contribucion struct {
	ID               string   `json:"id"`
	IDCampo          string   `json:"id_campo"`
	IDUsuario        string   `json:"id_usuario"`
	Texto            string   `json:"texto"`
	FotosAdicionales []string `json:"fotos_adicionales,omitempty"`
	Aprobada         bool     `json:"aprobada"`
	Fecha            string   `json:"fecha"`
}

// Perfil user profile row.
type Perfil struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	IsAdmin   bool   `json:"is_admin"`
}
