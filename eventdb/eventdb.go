// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "eventdb")

// EventDB manages all pool events.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New open a event db
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open event db")
	}
	// a memory db lives as long as its connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create event table")
	}
	s, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", s)
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert insert events into db in one transaction.
func (db *EventDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	for _, ev := range events {
		res, err := tx.Exec("INSERT INTO event(kind, pool, account, base, shares, fee, epoch) VALUES (?, ?, ?, ?, ?, ?, ?);",
			string(ev.Kind),
			ev.Pool.Bytes(),
			ev.Account.Bytes(),
			int64(ev.Base),
			int64(ev.Shares),
			int64(ev.Fee),
			int64(ev.Epoch),
		)
		if err != nil {
			tx.Rollback()
			return errors.Wrap(err, "insert event")
		}
		if id, err := res.LastInsertId(); err == nil {
			ev.Seq = uint64(id)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// Filter return events with options
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	const sel = "SELECT seq, kind, pool, account, base, shares, fee, epoch FROM event"
	if filter == nil {
		return db.query(sel + " ORDER BY seq ASC")
	}
	var (
		args  []any
		conds []string
	)
	if filter.Range != nil {
		conds = append(conds, "epoch >= ?")
		args = append(args, int64(filter.Range.From))
		if filter.Range.To >= filter.Range.From {
			conds = append(conds, "epoch <= ?")
			args = append(args, int64(filter.Range.To))
		}
	}
	if filter.Pool != nil {
		conds = append(conds, "pool = ?")
		args = append(args, filter.Pool.Bytes())
	}
	if filter.Account != nil {
		conds = append(conds, "account = ?")
		args = append(args, filter.Account.Bytes())
	}
	if len(filter.Kinds) > 0 {
		marks := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			marks = append(marks, "?")
			args = append(args, string(k))
		}
		conds = append(conds, "kind IN ("+strings.Join(marks, ",")+")")
	}

	stmt := sel
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.query(stmt, args...)
}

func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq                      int64
			kind                     string
			pool, account            []byte
			base, shares, fee, epoch int64
		)
		if err := rows.Scan(&seq, &kind, &pool, &account, &base, &shares, &fee, &epoch); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		events = append(events, &Event{
			Seq:     uint64(seq),
			Kind:    Kind(kind),
			Pool:    thor.BytesToAddress(pool),
			Account: thor.BytesToAddress(account),
			Base:    uint64(base),
			Shares:  uint64(shares),
			Fee:     uint64(fee),
			Epoch:   uint64(epoch),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate events")
	}
	return events, nil
}

// Path return db's directory
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite
func (db *EventDB) Close() error {
	return db.db.Close()
}
