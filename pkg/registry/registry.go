// Package registry provides the SQLite-backed identity registry: conferences,
// people keyed by normalized name, and idempotent committee-role assignments.
package registry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Registry wraps the registry database.
type Registry struct {
	db *sql.DB
}

// Conference is a conference row with its archived committee-page URLs.
type Conference struct {
	ID            string
	Venue         string
	Year          int
	PCURL         string
	OrganizersURL string
	SteeringURL   string
	CreatedAt     time.Time
}

// Person is an identity record. NormalizedKey is unique; CanonicalName is the
// display form first seen for this person and is never overwritten.
type Person struct {
	ID            string
	CanonicalName string
	NormalizedKey string
	Affiliation   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Role is one committee-role assignment joined with its conference and person.
type Role struct {
	Venue       string
	Year        int
	Name        string
	Affiliation string
	Committee   string
	Position    string
	RoleTitle   string
}

// RankedPerson is a person with their committee-role count.
type RankedPerson struct {
	Name      string
	RoleCount int
}

// Open creates or opens a registry database.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	r := &Registry{db: db}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS conferences (
			id TEXT PRIMARY KEY,
			venue TEXT NOT NULL,
			year INTEGER NOT NULL,
			archive_pc_url TEXT,
			archive_organizers_url TEXT,
			archive_steering_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(venue, year)
		);

		CREATE TABLE IF NOT EXISTS people (
			id TEXT PRIMARY KEY,
			canonical_name TEXT NOT NULL,
			normalized_name TEXT UNIQUE NOT NULL,
			affiliation TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_people_normalized ON people(normalized_name);

		CREATE TABLE IF NOT EXISTS committee_roles (
			id TEXT PRIMARY KEY,
			conference_id TEXT NOT NULL,
			person_id TEXT NOT NULL,
			committee TEXT NOT NULL,
			position TEXT NOT NULL,
			role_title TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conference_id) REFERENCES conferences(id),
			FOREIGN KEY (person_id) REFERENCES people(id),
			UNIQUE(conference_id, person_id, committee)
		);

		CREATE INDEX IF NOT EXISTS idx_roles_conference ON committee_roles(conference_id);
		CREATE INDEX IF NOT EXISTS idx_roles_person ON committee_roles(person_id);
	`
	_, err := r.db.Exec(schema)
	return err
}

// AddConference adds a conference, returning its ID. If the (venue, year)
// pair already exists, the existing ID is returned and any non-empty archive
// URLs on the argument replace the stored ones.
func (r *Registry) AddConference(conf *Conference) (string, error) {
	existing, err := r.GetConference(conf.Venue, conf.Year)
	if err != nil {
		return "", err
	}
	if existing != nil {
		_, err := r.db.Exec(
			`UPDATE conferences SET
				archive_pc_url = COALESCE(NULLIF(?, ''), archive_pc_url),
				archive_organizers_url = COALESCE(NULLIF(?, ''), archive_organizers_url),
				archive_steering_url = COALESCE(NULLIF(?, ''), archive_steering_url)
			 WHERE id = ?`,
			conf.PCURL, conf.OrganizersURL, conf.SteeringURL, existing.ID,
		)
		if err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(
		`INSERT INTO conferences (id, venue, year, archive_pc_url, archive_organizers_url, archive_steering_url)
		 VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))`,
		id, conf.Venue, conf.Year, conf.PCURL, conf.OrganizersURL, conf.SteeringURL,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetConference retrieves a conference by venue and year, or nil.
func (r *Registry) GetConference(venue string, year int) (*Conference, error) {
	row := r.db.QueryRow(
		`SELECT id, venue, year, archive_pc_url, archive_organizers_url, archive_steering_url, created_at
		 FROM conferences WHERE venue = ? AND year = ?`,
		venue, year,
	)
	return scanConference(row)
}

// ConferencesToScrape returns conferences with at least one archive URL,
// optionally filtered by venue code ("" or "all" matches everything) and year
// (0 matches everything), newest year first then venue.
func (r *Registry) ConferencesToScrape(venue string, year int) ([]Conference, error) {
	query := `SELECT id, venue, year, archive_pc_url, archive_organizers_url, archive_steering_url, created_at
		 FROM conferences
		 WHERE (archive_pc_url IS NOT NULL
		        OR archive_organizers_url IS NOT NULL
		        OR archive_steering_url IS NOT NULL)`
	var args []any

	if venue != "" && venue != "all" {
		query += " AND venue = ?"
		args = append(args, venue)
	}
	if year != 0 {
		query += " AND year = ?"
		args = append(args, year)
	}
	query += " ORDER BY year DESC, venue"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conferences []Conference
	for rows.Next() {
		conf, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		conferences = append(conferences, *conf)
	}
	return conferences, rows.Err()
}

// HasCommitteeData reports whether any committee-role rows exist for the
// conference.
func (r *Registry) HasCommitteeData(conferenceID string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM committee_roles WHERE conference_id = ?",
		conferenceID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPersonByKey retrieves a person by normalized key, or nil.
func (r *Registry) GetPersonByKey(key string) (*Person, error) {
	row := r.db.QueryRow(
		`SELECT id, canonical_name, normalized_name, affiliation, created_at, updated_at
		 FROM people WHERE normalized_name = ?`,
		key,
	)

	p := &Person{}
	var affiliation sql.NullString
	err := row.Scan(&p.ID, &p.CanonicalName, &p.NormalizedKey, &affiliation, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Affiliation = affiliation.String
	return p, nil
}

// GetOrCreatePerson resolves a display name to a person by normalized key,
// creating the record if absent. An existing person's display name is never
// modified.
func (r *Registry) GetOrCreatePerson(displayName, key, affiliation string) (*Person, error) {
	existing, err := r.GetPersonByKey(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(
		`INSERT INTO people (id, canonical_name, normalized_name, affiliation)
		 VALUES (?, ?, ?, NULLIF(?, ''))`,
		id, displayName, key, affiliation,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting person %q: %w", displayName, err)
	}
	return r.GetPersonByKey(key)
}

// UpsertRole inserts or overwrites the committee-role assignment for the
// natural key (conference, person, committee). Position and role title are
// replaced on conflict; the creation timestamp is left untouched. Safe under
// repeated or concurrent invocation.
func (r *Registry) UpsertRole(conferenceID, personID, committee, position, roleTitle string) error {
	_, err := r.db.Exec(
		`INSERT INTO committee_roles (id, conference_id, person_id, committee, position, role_title)
		 VALUES (?, ?, ?, ?, ?, NULLIF(?, ''))
		 ON CONFLICT (conference_id, person_id, committee)
		 DO UPDATE SET position = excluded.position,
		               role_title = excluded.role_title,
		               updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), conferenceID, personID, committee, position, roleTitle,
	)
	if err != nil {
		return fmt.Errorf("upserting role: %w", err)
	}
	return nil
}

// RolesForConference returns the committee-role rows for one conference.
func (r *Registry) RolesForConference(conferenceID string) ([]Role, error) {
	return r.queryRoles(
		`SELECT c.venue, c.year, p.canonical_name, p.affiliation, cr.committee, cr.position, cr.role_title
		 FROM committee_roles cr
		 JOIN conferences c ON c.id = cr.conference_id
		 JOIN people p ON p.id = cr.person_id
		 WHERE cr.conference_id = ?
		 ORDER BY cr.committee, p.canonical_name`,
		conferenceID,
	)
}

// RolesForPerson returns all committee roles held by a person, newest first.
func (r *Registry) RolesForPerson(personID string) ([]Role, error) {
	return r.queryRoles(
		`SELECT c.venue, c.year, p.canonical_name, p.affiliation, cr.committee, cr.position, cr.role_title
		 FROM committee_roles cr
		 JOIN conferences c ON c.id = cr.conference_id
		 JOIN people p ON p.id = cr.person_id
		 WHERE cr.person_id = ?
		 ORDER BY c.year DESC, c.venue`,
		personID,
	)
}

// AllRoles returns every committee-role row, ordered for export.
func (r *Registry) AllRoles() ([]Role, error) {
	return r.queryRoles(
		`SELECT c.venue, c.year, p.canonical_name, p.affiliation, cr.committee, cr.position, cr.role_title
		 FROM committee_roles cr
		 JOIN conferences c ON c.id = cr.conference_id
		 JOIN people p ON p.id = cr.person_id
		 ORDER BY c.year DESC, c.venue, cr.committee, p.canonical_name`,
	)
}

func (r *Registry) queryRoles(query string, args ...any) ([]Role, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		var affiliation, title sql.NullString
		if err := rows.Scan(&role.Venue, &role.Year, &role.Name, &affiliation, &role.Committee, &role.Position, &title); err != nil {
			return nil, err
		}
		role.Affiliation = affiliation.String
		role.RoleTitle = title.String
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// MostActivePeople returns people ranked by committee-role count.
func (r *Registry) MostActivePeople(limit int) ([]RankedPerson, error) {
	rows, err := r.db.Query(
		`SELECT p.canonical_name, COUNT(cr.id) as role_count
		 FROM people p
		 JOIN committee_roles cr ON cr.person_id = p.id
		 GROUP BY p.id
		 ORDER BY role_count DESC, p.canonical_name
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RankedPerson
	for rows.Next() {
		var rp RankedPerson
		if err := rows.Scan(&rp.Name, &rp.RoleCount); err != nil {
			return nil, err
		}
		results = append(results, rp)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConference(row rowScanner) (*Conference, error) {
	conf := &Conference{}
	var pc, oc, sc sql.NullString
	err := row.Scan(&conf.ID, &conf.Venue, &conf.Year, &pc, &oc, &sc, &conf.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	conf.PCURL = pc.String
	conf.OrganizersURL = oc.String
	conf.SteeringURL = sc.String
	return conf, nil
}
