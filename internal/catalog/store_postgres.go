// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/artmarket/internal/platform/database/schema"
	"github.com/taibuivan/artmarket/internal/platform/dberr"
	"github.com/taibuivan/artmarket/internal/platform/sec"
)

// PostgresBackend implements [Backend] and [CombinedSearcher] with the
// stored procedures installed by the catalog migrations.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend constructs a [PostgresBackend].
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// artworkColumns is the row shape shared by filter_artworks and search_artworks.
var artworkColumns = strings.Join([]string{
	schema.CatalogArtwork.ID,
	schema.CatalogArtwork.Title,
	schema.CatalogArtwork.Slug,
	schema.CatalogArtwork.ArtistID,
	schema.ArtworkRow.ArtistName,
	schema.CatalogArtwork.Category,
	schema.CatalogArtwork.Medium,
	schema.CatalogArtwork.Status,
	schema.CatalogArtwork.Price,
	schema.CatalogArtwork.Year,
	schema.CatalogArtwork.WidthCM,
	schema.CatalogArtwork.HeightCM,
	schema.CatalogArtwork.Location,
	schema.CatalogArtwork.ImageURL,
	schema.CatalogArtwork.IsFeatured,
	schema.CatalogArtwork.IsTrending,
	schema.CatalogArtwork.CreatedAt,
	schema.ArtworkRow.Rank,
}, ", ")

// filterArgs lists filter_artworks arguments in call order. The last two are
// defaulted by the procedure and only bound for combined search.
const filterArgs = `
	artwork_ids        => $1,
	categories         => $2,
	mediums            => $3,
	status_filter      => $4,
	min_price          => $5,
	max_price          => $6,
	artist_ids         => $7,
	artist_name_filter => $8,
	min_year           => $9,
	max_year           => $10,
	min_width_cm       => $11,
	max_width_cm       => $12,
	min_height_cm      => $13,
	max_height_cm      => $14,
	locations          => $15,
	only_featured      => $16,
	only_trending      => $17,
	sort_by            => $18,
	limit_count        => $19,
	offset_count       => $20`

func filterValues(params FilterParams) []any {
	return []any{
		params.ArtworkIDs,
		params.Categories,
		params.Mediums,
		params.StatusFilter,
		params.MinPrice,
		params.MaxPrice,
		params.ArtistIDs,
		params.ArtistNameFilter,
		params.MinYear,
		params.MaxYear,
		params.MinWidthCM,
		params.MaxWidthCM,
		params.MinHeightCM,
		params.MaxHeightCM,
		params.Locations,
		params.OnlyFeatured,
		params.OnlyTrending,
		params.SortBy,
		params.LimitCount,
		params.OffsetCount,
	}
}

// # Procedures

func (backend *PostgresBackend) FilterArtworks(ctx context.Context, params FilterParams) ([]Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM filter_artworks(%s)`, artworkColumns, filterArgs)

	return backend.queryArtworks(ctx, "filter_artworks", query, filterValues(params)...)
}

// SearchFilterArtworks pushes the text predicate into filter_artworks.
func (backend *PostgresBackend) SearchFilterArtworks(ctx context.Context, searchQuery string, byArtist bool, params FilterParams) ([]Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM filter_artworks(%s,
	search_query       => $21,
	search_by_artist   => $22)`, artworkColumns, filterArgs)

	args := append(filterValues(params), searchQuery, byArtist)
	return backend.queryArtworks(ctx, "filter_artworks_search", query, args...)
}

func (backend *PostgresBackend) SearchArtworks(ctx context.Context, searchQuery string, limit *int, offset int, byArtist bool) ([]Artwork, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM search_artworks(
			search_query     => $1,
			limit_count      => $2,
			offset_count     => $3,
			search_by_artist => $4)`, artworkColumns)

	return backend.queryArtworks(ctx, "search_artworks", query, searchQuery, limit, offset, byArtist)
}

func (backend *PostgresBackend) CountSearchArtworks(ctx context.Context, searchQuery string, byArtist bool) (int, error) {
	var total int
	err := backend.pool.QueryRow(ctx,
		`SELECT count_search_artworks(search_query => $1, search_by_artist => $2)`,
		searchQuery, byArtist,
	).Scan(&total)

	return total, dberr.Wrap(err, "count_search_artworks")
}

func (backend *PostgresBackend) ArtworkSuggestions(ctx context.Context, input string) ([]Suggestion, error) {
	rows, err := backend.pool.Query(ctx,
		`SELECT suggestion, kind, artwork_id FROM get_artwork_suggestions(input_text => $1)`,
		input,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_artwork_suggestions")
	}

	suggestions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Suggestion, error) {
		var suggestion Suggestion
		err := row.Scan(&suggestion.Text, &suggestion.Kind, &suggestion.ArtworkID)
		return suggestion, err
	})

	return suggestions, dberr.Wrap(err, "scan_suggestion")
}

// # Table Reads

func (backend *PostgresBackend) ListCategories(ctx context.Context) ([]string, error) {
	return backend.listColumn(ctx, schema.CatalogArtwork.Category)
}

func (backend *PostgresBackend) ListMediums(ctx context.Context) ([]string, error) {
	return backend.listColumn(ctx, schema.CatalogArtwork.Medium)
}

func (backend *PostgresBackend) ListLocations(ctx context.Context) ([]string, error) {
	return backend.listColumn(ctx, schema.CatalogArtwork.Location)
}

func (backend *PostgresBackend) ListPrices(ctx context.Context) ([]float64, error) {
	query := fmt.Sprintf(`SELECT %s::double precision FROM %s WHERE %s IS NOT NULL`,
		schema.CatalogArtwork.Price, schema.CatalogArtwork.Table, schema.CatalogArtwork.Price,
	)

	rows, err := backend.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_prices")
	}

	prices, err := pgx.CollectRows(rows, pgx.RowTo[float64])
	return prices, dberr.Wrap(err, "scan_price")
}

func (backend *PostgresBackend) FindArtistsByName(ctx context.Context, name string, limit int) ([]Artist, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s ILIKE $2 ESCAPE '\'
		ORDER BY %s ASC
		LIMIT $3
	`,
		schema.CatalogProfile.ID, schema.CatalogProfile.DisplayName, schema.CatalogProfile.AvatarURL,
		schema.CatalogProfile.Table,
		schema.CatalogProfile.Role, schema.CatalogProfile.DisplayName,
		schema.CatalogProfile.DisplayName,
	)

	rows, err := backend.pool.Query(ctx, query, string(sec.RoleArtist), "%"+escapeLike(name)+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "find_artists_by_name")
	}

	artists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Artist, error) {
		var artist Artist
		err := row.Scan(&artist.ID, &artist.DisplayName, &artist.AvatarURL)
		return artist, err
	})

	return artists, dberr.Wrap(err, "scan_artist")
}

// # Helpers

func (backend *PostgresBackend) queryArtworks(ctx context.Context, action, query string, args ...any) ([]Artwork, error) {
	rows, err := backend.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	artworks, err := pgx.CollectRows(rows, scanArtwork)
	return artworks, dberr.Wrap(err, action)
}

func scanArtwork(row pgx.CollectableRow) (Artwork, error) {
	var (
		artwork Artwork
		slug    *string
		status  string
	)

	err := row.Scan(
		&artwork.ID, &artwork.Title, &slug, &artwork.ArtistID, &artwork.ArtistName,
		&artwork.Category, &artwork.Medium, &status, &artwork.Price, &artwork.Year,
		&artwork.WidthCM, &artwork.HeightCM, &artwork.Location, &artwork.ImageURL,
		&artwork.IsFeatured, &artwork.IsTrending, &artwork.CreatedAt, &artwork.Rank,
	)
	if slug != nil {
		artwork.Slug = *slug
	}
	artwork.Status = Status(status)

	return artwork, err
}

func (backend *PostgresBackend) listColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NOT NULL`, column, schema.CatalogArtwork.Table, column)

	rows, err := backend.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_"+column)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return values, dberr.Wrap(err, "scan_"+column)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
