package entities

// SurahCount is the number of surahs in the Qur'an.
const SurahCount = 114

// Surah describes a chapter of the Qur'an.
type Surah struct {
	Number          int    `json:"number"`
	Transliteration string `json:"transliteration"`
	AyahCount       int    `json:"ayah_count"`
}

// HasAyah reports whether n is a valid ayah number in the surah.
func (s *Surah) HasAyah(n int) bool {
	return n >= 1 && n <= s.AyahCount
}
