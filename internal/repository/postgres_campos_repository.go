package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

// PostgresCamposRepository direct-SQL fallback for the campos catalog,
// used when talking to the pooler instead of the PostgREST endpoint.
type PostgresCamposRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresCamposRepository(client *database.PostgreSQLClient) repository.CamposRepository {
	return &PostgresCamposRepository{
		client: client,
	}
}

// campoRow scan target for nullable catalog columns.
type campoRow struct {
	ID           string
	Nombre       string
	Localidad    sql.NullString
	Provincia    sql.NullString
	FotoURL      sql.NullString
	Direccion    sql.NullString
	CodigoPostal sql.NullString
	Superficie   sql.NullString
	Tipo         sql.NullString
	Latitud      sql.NullFloat64
	Longitud     sql.NullFloat64
}

func (cr *campoRow) toCampo() model.Campo {
	campo := model.Campo{
		ID:           cr.ID,
		Nombre:       cr.Nombre,
		Localidad:    cr.Localidad.String,
		Provincia:    cr.Provincia.String,
		Direccion:    cr.Direccion.String,
		CodigoPostal: cr.CodigoPostal.String,
		Superficie:   cr.Superficie.String,
		Tipo:         cr.Tipo.String,
	}

	if cr.FotoURL.Valid {
		campo.FotoURL = &cr.FotoURL.String
	}
	if cr.Latitud.Valid {
		campo.Latitud = &cr.Latitud.Float64
	}
	if cr.Longitud.Valid {
		campo.Longitud = &cr.Longitud.Float64
	}

	return campo
}

const campoColumns = `id, nombre, localidad, provincia, foto_url, direccion, codigo_postal, superficie, tipo, latitud, longitud`

func scanCampoRow(scanner interface{ Scan(dest ...any) error }) (*campoRow, error) {
	var cr campoRow
	err := scanner.Scan(&cr.ID, &cr.Nombre, &cr.Localidad, &cr.Provincia, &cr.FotoURL,
		&cr.Direccion, &cr.CodigoPostal, &cr.Superficie, &cr.Tipo, &cr.Latitud, &cr.Longitud)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *PostgresCamposRepository) GetAll(ctx context.Context) ([]model.Campo, error) {
	query := `SELECT ` + campoColumns + ` FROM campos ORDER BY nombre`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch campos: %v", model.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	var campos []model.Campo
	for rows.Next() {
		cr, err := scanCampoRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campo: %w", err)
		}
		campos = append(campos, cr.toCampo())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed while iterating campos: %v", model.ErrRemoteUnavailable, err)
	}

	return campos, nil
}

func (r *PostgresCamposRepository) GetByID(ctx context.Context, id string) (*model.Campo, error) {
	query := `SELECT ` + campoColumns + ` FROM campos WHERE id = $1`

	row := r.client.DB.QueryRowContext(ctx, query, id)
	cr, err := scanCampoRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to fetch campo %s: %v", model.ErrRemoteUnavailable, id, err)
	}

	campo := cr.toCampo()
	return &campo, nil
}

func (r *PostgresCamposRepository) ListProvinciasByIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT provincia FROM campos WHERE id = ANY($1)`

	rows, err := r.client.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch provincias: %v", model.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	var provincias []string
	for rows.Next() {
		var provincia sql.NullString
		if err := rows.Scan(&provincia); err != nil {
			return nil, fmt.Errorf("failed to scan provincia: %w", err)
		}
		provincias = append(provincias, provincia.String)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed while iterating provincias: %v", model.ErrRemoteUnavailable, err)
	}

	return provincias, nil
}

func (r *PostgresCamposRepository) Update(ctx context.Context, id string, update *model.CampoUpdate) error {
	query := `
		UPDATE campos SET
			nombre        = COALESCE($2, nombre),
			localidad     = COALESCE($3, localidad),
			provincia     = COALESCE($4, provincia),
			foto_url      = COALESCE($5, foto_url),
			direccion     = COALESCE($6, direccion),
			codigo_postal = COALESCE($7, codigo_postal),
			superficie    = COALESCE($8, superficie),
			tipo          = COALESCE($9, tipo),
			latitud       = COALESCE($10, latitud),
			longitud      = COALESCE($11, longitud)
		WHERE id = $1
	`

	_, err := r.client.DB.ExecContext(ctx, query, id,
		update.Nombre, update.Localidad, update.Provincia, update.FotoURL,
		update.Direccion, update.CodigoPostal, update.Superficie, update.Tipo,
		update.Latitud, update.Longitud)
	if err != nil {
		return fmt.Errorf("%w: failed to update campo %s: %v", model.ErrRemoteUnavailable, id, err)
	}

	return nil
}
