package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nirmaan-tech/procure-api/internal/store"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

const defaultListLimit = 20

// DB is the interface satisfied by both *sqlx.DB and *sqlx.Tx so the same
// repository code serves plain and transactional use.
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository.
type SqliteRepository struct {
	db       *sqlx.DB // required for starting new transactions
	executor DB       // used for actual queries (either *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txRepo := &SqliteRepository{
		db:       r.db,
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) Vendors() store.VendorRepository {
	return &vendorRepo{db: r.executor}
}

func (r *SqliteRepository) DMREntries() store.DMRRepository {
	return &dmrRepo{db: r.executor}
}

func (r *SqliteRepository) ImprestDMRs() store.ImprestRepository {
	return &imprestRepo{db: r.executor}
}

func (r *SqliteRepository) Orders() store.OrderRepository {
	return &orderRepo{db: r.executor}
}

func (r *SqliteRepository) Geo() store.GeoRepository {
	return &geoRepo{db: r.executor}
}

// pageArgs normalizes pagination into LIMIT/OFFSET values.
func pageArgs(p store.ListParams) (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

type vendorRepo struct {
	db DB
}

func (r *vendorRepo) List(ctx context.Context, p store.ListParams) ([]model.Vendor, error) {
	limit, offset := pageArgs(p)

	query := `SELECT * FROM vendors WHERE 1=1`
	args := []interface{}{}
	if p.Status != "" {
		query += ` AND status = ?`
		args = append(args, p.Status)
	}
	if p.Search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+p.Search+"%")
	}
	query += ` ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	vendors := []model.Vendor{}
	err := r.db.SelectContext(ctx, &vendors, query, args...)
	return vendors, err
}

func (r *vendorRepo) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	var v model.Vendor
	if err := r.db.GetContext(ctx, &v, `SELECT * FROM vendors WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM vendors`)
	return n, err
}

func (r *vendorRepo) Create(ctx context.Context, v *model.Vendor) error {
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
	query := `
	INSERT INTO vendors (id, name, contact_person, phone, email, gstin, address, city, state, status, created_at, updated_at)
	VALUES (:id, :name, :contact_person, :phone, :email, :gstin, :address, :city, :state, :status, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, v)
	return err
}

func (r *vendorRepo) Update(ctx context.Context, v *model.Vendor) error {
	v.UpdatedAt = time.Now()
	query := `
	UPDATE vendors SET
		name = :name, contact_person = :contact_person, phone = :phone,
		email = :email, gstin = :gstin, address = :address,
		city = :city, state = :state, status = :status, updated_at = :updated_at
	WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, v)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *vendorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type dmrRepo struct {
	db DB
}

func (r *dmrRepo) List(ctx context.Context, p store.ListParams) ([]model.DMREntry, error) {
	limit, offset := pageArgs(p)

	query := `SELECT * FROM dmr_entries WHERE 1=1`
	args := []interface{}{}
	if p.Project != "" {
		query += ` AND project_id = ?`
		args = append(args, p.Project)
	}
	if p.Status != "" {
		query += ` AND status = ?`
		args = append(args, p.Status)
	}
	if p.Search != "" {
		query += ` AND material LIKE ?`
		args = append(args, "%"+p.Search+"%")
	}
	query += ` ORDER BY receipt_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	entries := []model.DMREntry{}
	err := r.db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}

func (r *dmrRepo) GetByID(ctx context.Context, id string) (*model.DMREntry, error) {
	var e model.DMREntry
	if err := r.db.GetContext(ctx, &e, `SELECT * FROM dmr_entries WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *dmrRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM dmr_entries`)
	return n, err
}

func (r *dmrRepo) Create(ctx context.Context, e *model.DMREntry) error {
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	query := `
	INSERT INTO dmr_entries (
		id, project_id, vendor_id, order_id, material, quantity, unit,
		rate_paise, challan_no, receipt_date, status, remarks, created_at, updated_at
	) VALUES (
		:id, :project_id, :vendor_id, :order_id, :material, :quantity, :unit,
		:rate_paise, :challan_no, :receipt_date, :status, :remarks, :created_at, :updated_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, e)
	return err
}

func (r *dmrRepo) Update(ctx context.Context, e *model.DMREntry) error {
	e.UpdatedAt = time.Now()
	query := `
	UPDATE dmr_entries SET
		material = :material, quantity = :quantity, unit = :unit,
		rate_paise = :rate_paise, challan_no = :challan_no,
		receipt_date = :receipt_date, status = :status, remarks = :remarks,
		updated_at = :updated_at
	WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type imprestRepo struct {
	db DB
}

func (r *imprestRepo) List(ctx context.Context, p store.ListParams) ([]model.ImprestDMR, error) {
	limit, offset := pageArgs(p)

	query := `SELECT * FROM imprest_dmrs WHERE 1=1`
	args := []interface{}{}
	if p.Project != "" {
		query += ` AND project_id = ?`
		args = append(args, p.Project)
	}
	if p.Search != "" {
		query += ` AND material LIKE ?`
		args = append(args, "%"+p.Search+"%")
	}
	query += ` ORDER BY receipt_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	entries := []model.ImprestDMR{}
	err := r.db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}

func (r *imprestRepo) GetByID(ctx context.Context, id string) (*model.ImprestDMR, error) {
	var e model.ImprestDMR
	if err := r.db.GetContext(ctx, &e, `SELECT * FROM imprest_dmrs WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *imprestRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM imprest_dmrs`)
	return n, err
}

func (r *imprestRepo) Create(ctx context.Context, e *model.ImprestDMR) error {
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	query := `
	INSERT INTO imprest_dmrs (
		id, project_id, paid_by, material, quantity, unit,
		amount_paise, receipt_date, created_at, updated_at
	) VALUES (
		:id, :project_id, :paid_by, :material, :quantity, :unit,
		:amount_paise, :receipt_date, :created_at, :updated_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, e)
	return err
}

type orderRepo struct {
	db DB
}

func (r *orderRepo) List(ctx context.Context, p store.ListParams) ([]model.PurchaseOrder, error) {
	limit, offset := pageArgs(p)

	query := `SELECT * FROM purchase_orders WHERE 1=1`
	args := []interface{}{}
	if p.Project != "" {
		query += ` AND project_id = ?`
		args = append(args, p.Project)
	}
	if p.Status != "" {
		query += ` AND status = ?`
		args = append(args, p.Status)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	orders := []model.PurchaseOrder{}
	err := r.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	var o model.PurchaseOrder
	if err := r.db.GetContext(ctx, &o, `SELECT * FROM purchase_orders WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM purchase_orders`)
	return n, err
}

func (r *orderRepo) Create(ctx context.Context, o *model.PurchaseOrder) error {
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	query := `
	INSERT INTO purchase_orders (id, project_id, vendor_id, order_no, status, total_paise, issued_at, created_at, updated_at)
	VALUES (:id, :project_id, :vendor_id, :order_no, :status, :total_paise, :issued_at, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, o)
	return err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	var res sql.Result
	var err error
	if status == "issued" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE purchase_orders SET status = ?, issued_at = ?, updated_at = ? WHERE id = ?`,
			status, time.Now(), time.Now(), id)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE purchase_orders SET status = ?, updated_at = ? WHERE id = ?`,
			status, time.Now(), id)
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

type geoRepo struct {
	db DB
}

func (r *geoRepo) States(ctx context.Context) ([]model.State, error) {
	states := []model.State{}
	err := r.db.SelectContext(ctx, &states, `SELECT * FROM states ORDER BY name`)
	return states, err
}

func (r *geoRepo) Cities(ctx context.Context, stateCode string) ([]model.City, error) {
	cities := []model.City{}
	err := r.db.SelectContext(ctx, &cities, `SELECT * FROM cities WHERE state_code = ? ORDER BY name`, stateCode)
	return cities, err
}

func (r *geoRepo) SeedStates(ctx context.Context, states []model.State) error {
	for _, s := range states {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO states (code, name) VALUES (?, ?)`, s.Code, s.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *geoRepo) SeedCities(ctx context.Context, stateCode string, names []string) error {
	for _, name := range names {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO cities (state_code, name) VALUES (?, ?)`, stateCode, name)
		if err != nil {
			return err
		}
	}
	return nil
}

// requireRow maps "zero rows affected" onto sql.ErrNoRows so handlers can
// distinguish a missing record from a database failure.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
