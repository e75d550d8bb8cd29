/*
Package history keeps a sqlite journal of training runs and their per-epoch metrics
*/
package history

import (
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/zorros/zorros"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started TIMESTAMP NOT NULL,
	corpus TEXT NOT NULL,
	seed INTEGER NOT NULL,
	params TEXT NOT NULL,
	test_loss REAL,
	test_accuracy REAL
);
CREATE TABLE IF NOT EXISTS epochs (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	iteration INTEGER NOT NULL,
	loss REAL NOT NULL,
	accuracy REAL NOT NULL,
	val_loss REAL NOT NULL,
	val_accuracy REAL NOT NULL,
	PRIMARY KEY (run_id, iteration)
);
`

/*
Store is an open history database
*/
type Store struct {
	db *sql.DB
}

/*
Run is one training run, it implements model.Journal
*/
type Run struct {
	ID    int64
	store *Store
}

/*
RunInfo describes a finished or running training run
*/
type RunInfo struct {
	ID           int64
	Started      time.Time
	Corpus       string
	Seed         int64
	Params       string
	TestLoss     sql.NullFloat64
	TestAccuracy sql.NullFloat64
}

/*
Open opens or creates the sqlite database at path
*/
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open history %v: %v", path, err.Error())
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, zorros.Wrapf(err, "failed to create history schema: %v", err.Error())
	}
	return &Store{db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

/*
Begin registers a new run
*/
func (s *Store) Begin(corpus string, seed int64, params string) (*Run, error) {
	r, err := s.db.Exec(
		`INSERT INTO runs (started, corpus, seed, params) VALUES (?, ?, ?, ?)`,
		time.Now().UTC(), corpus, seed, params)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return &Run{ID: id, store: s}, nil
}

/*
Epoch appends metrics of one iteration
*/
func (r *Run) Epoch(iteration int, train, test model.Evaluation) error {
	_, err := r.store.db.Exec(
		`INSERT INTO epochs (run_id, iteration, loss, accuracy, val_loss, val_accuracy) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, iteration, train.Loss, train.Accuracy, test.Loss, test.Accuracy)
	if err != nil {
		return zorros.Wrapf(err, "failed to store iteration %d: %v", iteration, err.Error())
	}
	return nil
}

/*
Finish stores the final test evaluation
*/
func (r *Run) Finish(test model.Evaluation) error {
	_, err := r.store.db.Exec(
		`UPDATE runs SET test_loss = ?, test_accuracy = ? WHERE id = ?`,
		test.Loss, test.Accuracy, r.ID)
	if err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
Runs lists all runs in registration order
*/
func (s *Store) Runs() ([]RunInfo, error) {
	rows, err := s.db.Query(`SELECT id, started, corpus, seed, params, test_loss, test_accuracy FROM runs ORDER BY id`)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var r []RunInfo
	for rows.Next() {
		var x RunInfo
		if err = rows.Scan(&x.ID, &x.Started, &x.Corpus, &x.Seed, &x.Params, &x.TestLoss, &x.TestAccuracy); err != nil {
			return nil, zorros.Trace(err)
		}
		r = append(r, x)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return r, nil
}

/*
History reads back per-epoch metrics of a run
*/
func (s *Store) History(runID int64) (model.History, error) {
	rows, err := s.db.Query(
		`SELECT iteration, loss, accuracy, val_loss, val_accuracy FROM epochs WHERE run_id = ? ORDER BY iteration`,
		runID)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var h model.History
	for rows.Next() {
		e := model.Epoch{}
		if err = rows.Scan(&e.Iteration, &e.Train.Loss, &e.Train.Accuracy, &e.Test.Loss, &e.Test.Accuracy); err != nil {
			return nil, zorros.Trace(err)
		}
		e.Train.Iteration, e.Train.Subset = e.Iteration, model.TrainSubset
		e.Test.Iteration, e.Test.Subset = e.Iteration, model.TestSubset
		h = append(h, e)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return h, nil
}
