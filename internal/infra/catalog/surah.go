package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

var ErrUnknownSurah = errors.New("unknown surah")

//go:embed surahs.json
var surahsJSON []byte

// SurahRepository provides access to the 114 surahs and their ayah counts.
type SurahRepository struct {
	surahs []*entities.Surah
}

// NewSurahRepository loads the embedded surah table.
func NewSurahRepository() (*SurahRepository, error) {
	surahs, err := parseSurahs(surahsJSON)
	if err != nil {
		return nil, err
	}

	return &SurahRepository{surahs: surahs}, nil
}

// GetByNumber retrieves a surah by its number (1-114).
func (r *SurahRepository) GetByNumber(number int) (*entities.Surah, error) {
	if number < 1 || number > len(r.surahs) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSurah, number)
	}

	return r.surahs[number-1], nil
}

// GetAll retrieves all surahs in mushaf order.
func (r *SurahRepository) GetAll() []*entities.Surah {
	return r.surahs
}

func parseSurahs(data []byte) ([]*entities.Surah, error) {
	var surahs []*entities.Surah
	if err := json.Unmarshal(data, &surahs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal surahs JSON: %w", err)
	}

	if len(surahs) != entities.SurahCount {
		return nil, fmt.Errorf("expected %d surahs, got %d", entities.SurahCount, len(surahs))
	}

	for i, s := range surahs {
		if s.Number != i+1 {
			return nil, fmt.Errorf("surah at position %d has number %d", i+1, s.Number)
		}
		if s.AyahCount <= 0 {
			return nil, fmt.Errorf("surah %d has no ayahs", s.Number)
		}
	}

	return surahs, nil
}
