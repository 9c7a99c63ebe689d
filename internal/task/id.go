package task

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const (
	minIDLength = 4
	maxIDLength = 10
	saltSize    = 16
	hexChunk    = 4 // 16 bits per base36 chunk
)

// GenerateID derives a short base36 identifier from label and createdAt.
// It returns the shortest prefix (between minIDLength and maxIDLength) for
// which taken reports false.
func GenerateID(label string, createdAt time.Time, taken func(string) bool) string {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}

	h := sha256.New()
	h.Write([]byte(label))
	h.Write([]byte(createdAt.UTC().Format(time.RFC3339Nano)))
	h.Write(salt)
	encoded := base36(hex.EncodeToString(h.Sum(nil)))

	for n := minIDLength; n <= maxIDLength && n <= len(encoded); n++ {
		if id := encoded[:n]; !taken(id) {
			return id
		}
	}
	return encoded[:maxIDLength]
}

// Fingerprint returns a stable hex digest of the fields the projection and
// layout engines read. Two task sets with equal fingerprints produce equal
// series and layouts.
func Fingerprint(tasks []Task) string {
	h := sha256.New()
	for i := range tasks {
		t := &tasks[i]
		h.Write([]byte(t.ID))
		h.Write([]byte{0})
		h.Write([]byte(t.Status))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(t.Progress)))
		writeDate(h, &t.StartDate)
		writeDate(h, &t.DueDate)
		writeDate(h, t.ActualStartDate)
		writeDate(h, t.ActualEndDate)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeDate(w interface{ Write([]byte) (int, error) }, d *time.Time) {
	if d == nil {
		_, _ = w.Write([]byte("|-"))
		return
	}
	_, _ = w.Write([]byte("|" + d.Format(time.RFC3339)))
}

func base36(hexStr string) string {
	var sb strings.Builder
	for i := 0; i < len(hexStr); i += hexChunk {
		end := min(i+hexChunk, len(hexStr))
		v, _ := strconv.ParseUint(hexStr[i:end], 16, 64)
		sb.WriteString(strconv.FormatUint(v, 36))
	}
	return sb.String()
}
