package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionRate   = "rate"   // rate:<surah>:<ayah>:<quality>
	actionNext   = "next"   // next:<surah>
	actionStatus = "status" // status:<surah>
)

var errBadCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// ints parses exactly n integer params.
func (cd callbackData) ints(n int) ([]int, error) {
	if len(cd.Params) != n {
		return nil, errBadCallback
	}

	out := make([]int, n)
	for i, p := range cd.Params {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errBadCallback
		}
		out[i] = v
	}
	return out, nil
}

// buildRateCallback builds callback data for rating an ayah review.
func buildRateCallback(surahID, ayah int, q entities.Quality) string {
	return callbackData{
		Action: actionRate,
		Params: []string{
			strconv.Itoa(surahID),
			strconv.Itoa(ayah),
			strconv.Itoa(int(q)),
		},
	}.encode()
}

// buildNextCallback builds callback data for reviewing the next due ayah.
func buildNextCallback(surahID int) string {
	return callbackData{Action: actionNext, Params: []string{strconv.Itoa(surahID)}}.encode()
}

// buildStatusCallback builds callback data for opening a surah overview.
func buildStatusCallback(surahID int) string {
	return callbackData{Action: actionStatus, Params: []string{strconv.Itoa(surahID)}}.encode()
}
