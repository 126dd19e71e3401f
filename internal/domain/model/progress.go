package model

// Visita a visit row in the remote system of record. CreatedAt keeps the
// wire string; callers parse it with the strict timestamp parser.
type Visita struct {
	ID        string `json:"id,omitempty"`
	IDUsuario string `json:"id_usuario"`
	IDCampo   string `json:"id_campo"`
	CreatedAt string `json:"created_at,omitempty"`
}

// VisitOutcome result of an idempotent visit recording.
type VisitOutcome int

const (
	VisitFailed VisitOutcome = iota
	VisitCreated
	VisitAlreadyExisted
)

func (o VisitOutcome) String() string {
	switch o {
	case VisitCreated:
		return "created"
	case VisitAlreadyExisted:
		return "already_existed"
	default:
		return "failed"
	}
}

// Logro an achievement rule from the static catalog.
type Logro struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Condicion   *string `json:"condicion,omitempty"`
	Orden       *int    `json:"orden,omitempty"`
	XP          *int    `json:"xp,omitempty"`
}

// XPValue returns the reward XP, zero when unset.
func (l *Logro) XPValue() int {
	if l.XP == nil {
		return 0
	}
	return *l.XP
}

// LogroDesbloqueado an unlocked achievement for a user. Inserted once,
// never deleted.
type LogroDesbloqueado struct {
	ID              string `json:"id"`
	IDUsuario       string `json:"id_usuario"`
	IDLogro         string `json:"id_logro"`
	FechaDesbloqueo string `json:"fecha_desbloqueo"`
}

// NivelData persisted level row, recomputable from the visit history.
type NivelData struct {
	IDUsuario     string `json:"id_usuario"`
	Level         int    `json:"level"`
	CurrentXP     int    `json:"current_xp"`
	XPToNextLevel int    `json:"xp_to_next_level"`
}

// AccesoDiario per-user daily access record driving the streak reward.
type AccesoDiario struct {
	ID                        string  `json:"id"`
	IDUsuario                 string  `json:"id_usuario"`
	UltimoAcceso              *string `json:"ultimo_acceso,omitempty"`
	DiasConsecutivos          int     `json:"dias_consecutivos"`
	UltimaRecompensaReclamada *string `json:"ultima_recompensa_reclamada,omitempty"`
}

// AccesoDiarioUpdate update payload for accesos_diarios.
type AccesoDiarioUpdate struct {
	UltimoAcceso              string  `json:"ultimo_acceso"`
	DiasConsecutivos          int     `json:"dias_consecutivos"`
	UltimaRecompensaReclamada *string `json:"ultima_recompensa_reclamada,omitempty"`
}

// ProgressSnapshot derived progress state. Never authoritative: always
// reproducible from visits, unlocked achievements and the daily access
// record, persisted only for fast reads.
type ProgressSnapshot struct {
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
