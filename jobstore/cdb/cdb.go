package cdb

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/jobstore"
)

var (
	upsertJobQuery = `
insert into job(key, description, progress, start_time, end_time) values ($1, $2, $3, $4, $5)
on conflict (key) do update set progress=excluded.progress, end_time=excluded.end_time
where job.end_time is null`

	findJobQuery = `select key, description, progress, start_time, end_time from job where key=$1`

	removeFinishedQuery = `delete from job where end_time is not null and end_time < $1`

	// Compile-time check for ensuring CDBJobStore implements JobStore.
	_ jobstore.JobStore = (*CDBJobStore)(nil)
)

// CDBJobStore implements a job store that persists the jobs to a
// cockroachdb instance.
type CDBJobStore struct {
	db *sql.DB
}

// NewCDBJobStore returns a CDBJobStore instance that connects to the
// cockroachdb instance specified by dsn.
func NewCDBJobStore(dsn string) (*CDBJobStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &CDBJobStore{db: db}, nil
}

// Close terminates the connection to the backing cockroachdb instance.
func (s *CDBJobStore) Close() error {
	return s.db.Close()
}

// Inserts or updates a job.
func (s *CDBJobStore) UpsertJob(job *jobstore.Job) error {
	if err := job.Validate(); err != nil {
		return xerrors.Errorf("upsert job: %w", err)
	}

	res, err := s.db.Exec(
		upsertJobQuery,
		string(job.Key),
		job.Description,
		job.Progress,
		job.StartTime.UTC(),
		pq.NullTime{Time: job.EndTime.UTC(), Valid: job.Done()},
	)
	if err != nil {
		return xerrors.Errorf("upsert job: %w", err)
	}

	// The conditional update skips jobs that already have an end time.
	affected, err := res.RowsAffected()
	if err != nil {
		return xerrors.Errorf("upsert job: %w", err)
	}
	if affected == 0 {
		return xerrors.Errorf("upsert job %s: %w", job.Key, jobstore.ErrJobFinished)
	}
	return nil
}

// Looks up a job by its key.
func (s *CDBJobStore) FindJob(key jobstore.Key) (*jobstore.Job, error) {
	var (
		job     jobstore.Job
		rawKey  string
		endTime pq.NullTime
	)

	row := s.db.QueryRow(findJobQuery, string(key))
	if err := row.Scan(&rawKey, &job.Description, &job.Progress, &job.StartTime, &endTime); err != nil {
		if err == sql.ErrNoRows {
			return nil, xerrors.Errorf("find job %s: %w", key, jobstore.ErrUnknownJob)
		}
		return nil, xerrors.Errorf("find job %s: %w", key, err)
	}

	job.Key = jobstore.Key(rawKey)
	job.StartTime = job.StartTime.UTC()
	if endTime.Valid {
		job.EndTime = endTime.Time.UTC()
	}
	return &job, nil
}

// Removes every finished job whose end time is before t.
func (s *CDBJobStore) RemoveFinishedBefore(t time.Time) (uint64, error) {
	res, err := s.db.Exec(removeFinishedQuery, t.UTC())
	if err != nil {
		return 0, xerrors.Errorf("remove finished jobs: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, xerrors.Errorf("remove finished jobs: %w", err)
	}
	return uint64(affected), nil
}
