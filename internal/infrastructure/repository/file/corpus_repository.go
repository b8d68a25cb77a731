package file

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/matchdata-sync/internal/domain/corpus"
	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

const (
	snapshotInfix      = "_sample_"
	snapshotDateLayout = "20060102"
)

// CorpusRepository keeps the corpus in a single JSON file and snapshots the
// previous version next to it on every save.
type CorpusRepository struct {
	path   string
	logger *logging.Logger
}

var _ corpus.Repository = (*CorpusRepository)(nil)

func NewCorpusRepository(path string, logger *logging.Logger) *CorpusRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CorpusRepository{path: path, logger: logger}
}

// Load returns an empty corpus when the file does not exist yet.
func (r *CorpusRepository) Load(ctx context.Context) (corpus.Corpus, error) {
	if strings.TrimSpace(r.path) == "" {
		return corpus.Corpus{}, crerr.Wrap(usecase.ErrInvalidInput, "corpus path is empty")
	}

	var out corpus.Corpus
	if err := decodeJSON(r.path, &out); err != nil {
		if os.IsNotExist(err) {
			r.logger.WarnContext(ctx, "corpus file not found, starting empty", "path", r.path)
			return corpus.Corpus{Matches: []match.Match{}, Events: []event.Event{}}, nil
		}
		return corpus.Corpus{}, usecase.Persistence(err, "load corpus %s", r.path)
	}

	if out.Matches == nil {
		out.Matches = []match.Match{}
	}
	if out.Events == nil {
		out.Events = []event.Event{}
	}
	return out, nil
}

// Save writes data next to the corpus, snapshots the current file under a
// name derived from snapshotAt and renames the new content into place. The
// previous corpus is left untouched when any step fails.
func (r *CorpusRepository) Save(ctx context.Context, data corpus.Corpus, snapshotAt time.Time) (string, error) {
	if strings.TrimSpace(r.path) == "" {
		return "", crerr.Wrap(usecase.ErrInvalidInput, "corpus path is empty")
	}
	if data.Matches == nil {
		data.Matches = []match.Match{}
	}
	if data.Events == nil {
		data.Events = []event.Event{}
	}

	buf, err := encodeJSON(data)
	if err != nil {
		return "", usecase.Persistence(err, "encode corpus")
	}
	defer bytebufferpool.Put(buf)

	tmpPath, err := stageFile(r.path, buf.B)
	if err != nil {
		return "", usecase.Persistence(err, "stage corpus")
	}

	exists, err := fileExists(r.path)
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", usecase.Persistence(err, "stat corpus %s", r.path)
	}

	snapshotPath := ""
	if exists {
		snapshotPath, err = r.nextSnapshotPath(snapshotAt)
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", usecase.Persistence(err, "resolve snapshot name")
		}
		if err := preserveFile(r.path, snapshotPath); err != nil {
			_ = os.Remove(tmpPath)
			return "", usecase.Persistence(err, "snapshot corpus to %s", snapshotPath)
		}
		r.logger.InfoContext(ctx, "previous corpus snapshot created", "snapshot", snapshotPath)
	}

	if err := commitFile(tmpPath, r.path); err != nil {
		return "", usecase.Persistence(err, "replace corpus %s", r.path)
	}

	r.logger.InfoContext(ctx, "corpus saved",
		"path", r.path,
		"matches", len(data.Matches),
		"events", len(data.Events),
	)
	return snapshotPath, nil
}

// nextSnapshotPath returns matchdata_sample_YYYYMMDD.json, adding _2, _3...
// when that name is already taken.
func (r *CorpusRepository) nextSnapshotPath(snapshotAt time.Time) (string, error) {
	if snapshotAt.IsZero() {
		snapshotAt = time.Unix(0, 0)
	}

	dir := filepath.Dir(r.path)
	base := filepath.Base(r.path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := stem + snapshotInfix + snapshotAt.UTC().Format(snapshotDateLayout)

	candidate := filepath.Join(dir, name+ext)
	for seq := 2; ; seq++ {
		exists, err := fileExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = filepath.Join(dir, name+"_"+strconv.Itoa(seq)+ext)
	}
}
