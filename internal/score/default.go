package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"git.lost.host/meutraa/otr/internal/judge"
)

type DefaultScorer struct {
	db *sql.DB
}

// countsCompact flattens the tier count map into stable columns for storage.
type countsCompact struct {
	N300  int
	N100  int
	N50   int
	NMiss int
}

func compactCounts(counts map[int]int) countsCompact {
	return countsCompact{
		N300:  counts[judge.Tier300],
		N100:  counts[judge.Tier100],
		N50:   counts[judge.Tier50],
		NMiss: counts[judge.TierMiss],
	}
}

func uncompactCounts(c countsCompact) map[int]int {
	return map[int]int{
		judge.Tier300:  c.N300,
		judge.Tier100:  c.N100,
		judge.Tier50:   c.N50,
		judge.TierMiss: c.NMiss,
	}
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", "./results.db")
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  style text,
		  score integer,
		  max_combo integer,
		  counts bytearray
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// HashBeatmap identifies a beatmap by the digest of its file contents.
func HashBeatmap(file string) (string, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return "", err
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (s *DefaultScorer) Save(sum string, style string, result judge.Score) {
	data, err := json.Marshal(compactCounts(result.Counts))
	if nil != err {
		log.Println("unable to marshal counts", err)
		return
	}
	_, err = s.db.Exec(
		"insert into results(sum, style, score, max_combo, counts) values(?, ?, ?, ?, ?)",
		sum, style, result.Score, result.MaxCombo, data)
	if nil != err {
		log.Println("unable to save result")
		return
	}
}

func (s *DefaultScorer) Load(sum string) []Result {
	results := []Result{}
	rows, err := s.db.Query(
		"select sum, style, score, max_combo, counts from results where sum = ?", sum)
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load results", err)
		return results
	}
	defer rows.Close()
	for rows.Next() {
		var r Result
		var counts []byte
		rows.Scan(&r.Sum, &r.Style, &r.Score, &r.MaxCombo, &counts)
		var c countsCompact
		if err := json.Unmarshal(counts, &c); nil != err {
			log.Println("unable to unmarshal result counts")
			continue
		}
		r.Counts = uncompactCounts(c)
		results = append(results, r)
	}
	return results
}
