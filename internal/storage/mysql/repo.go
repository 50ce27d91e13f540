package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"travel_reco/internal/domain"
)

const (
	kindBeach  = "beach"
	kindTemple = "temple"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ReplaceCatalog swaps the staged catalog for c atomically.
func (r *Repo) ReplaceCatalog(ctx context.Context, c domain.Catalog) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{deleteCitiesSQL, deleteCountriesSQL, deletePlacesSQL} {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}

	if err = insertPlaces(ctx, tx, kindBeach, c.Beaches); err != nil {
		return err
	}
	if err = insertPlaces(ctx, tx, kindTemple, c.Temples); err != nil {
		return err
	}
	for i, co := range c.Countries {
		if _, err = tx.ExecContext(ctx, insertCountrySQL, i, co.Name); err != nil {
			return fmt.Errorf("insert country %q: %w", co.Name, err)
		}
		if err = insertCities(ctx, tx, i, co.Cities); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertPlaces(ctx context.Context, tx *sql.Tx, kind string, ps []domain.Place) error {
	if len(ps) == 0 {
		return nil
	}
	values := make([]string, 0, len(ps))
	args := make([]any, 0, len(ps)*5) // 5 params per row
	for i, p := range ps {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, kind, i, p.Name, valStr(p.ImageURL), valStr(p.Description))
	}
	if _, err := tx.ExecContext(ctx, insertPlacesPrefix+strings.Join(values, ","), args...); err != nil {
		return fmt.Errorf("insert %s rows: %w", kind, err)
	}
	return nil
}

func insertCities(ctx context.Context, tx *sql.Tx, country int, cities []domain.Place) error {
	if len(cities) == 0 {
		return nil
	}
	values := make([]string, 0, len(cities))
	args := make([]any, 0, len(cities)*5)
	for i, c := range cities {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, country, i, c.Name, valStr(c.ImageURL), valStr(c.Description))
	}
	if _, err := tx.ExecContext(ctx, insertCitiesPrefix+strings.Join(values, ","), args...); err != nil {
		return fmt.Errorf("insert cities for country %d: %w", country, err)
	}
	return nil
}

// LoadCatalog reads the staged catalog in catalog order. It returns
// domain.ErrNotFound when nothing has been seeded.
func (r *Repo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var (
		beaches, temples []domain.Place
		countries        []domain.Country
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		beaches, err = r.listPlaces(gctx, kindBeach)
		return err
	})
	g.Go(func() (err error) {
		temples, err = r.listPlaces(gctx, kindTemple)
		return err
	})
	g.Go(func() (err error) {
		countries, err = r.listCountries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Catalog{}, err
	}

	if len(beaches) == 0 && len(temples) == 0 && len(countries) == 0 {
		return domain.Catalog{}, domain.ErrNotFound
	}
	return domain.Catalog{Beaches: beaches, Temples: temples, Countries: countries}, nil
}

func (r *Repo) listPlaces(ctx context.Context, kind string) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, listPlacesSQL, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Place{}
	for rows.Next() {
		var p domain.Place
		var img, desc sql.NullString
		if err := rows.Scan(&p.Name, &img, &desc); err != nil {
			return nil, err
		}
		p.ImageURL, p.Description = img.String, desc.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) listCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.QueryContext(ctx, listCountriesSQL)
	if err != nil {
		return nil, err
	}
	out := []domain.Country{}
	index := map[int]int{} // position -> index in out
	for rows.Next() {
		var pos int
		var co domain.Country
		if err := rows.Scan(&pos, &co.Name); err != nil {
			rows.Close()
			return nil, err
		}
		co.Cities = []domain.Place{}
		index[pos] = len(out)
		out = append(out, co)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, listCitiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pos int
		var city domain.Place
		var img, desc sql.NullString
		if err := rows.Scan(&pos, &city.Name, &img, &desc); err != nil {
			return nil, err
		}
		city.ImageURL, city.Description = img.String, desc.String
		i, ok := index[pos]
		if !ok {
			continue
		}
		out[i].Cities = append(out[i].Cities, city)
	}
	return out, rows.Err()
}
