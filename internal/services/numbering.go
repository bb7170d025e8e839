package services

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// Document number prefixes.
const (
	subscriptionPrefix = "SUB"
	invoicePrefix      = "INV"
)

// documentNumber builds display identifiers like SUB-20260115-093042-4821.
// The 4-digit suffix keeps collisions unlikely for display purposes; the
// unique index on the number column catches the rest.
func documentNumber(prefix string) string {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the clock so numbering still works.
		return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("20060102-150405"), time.Now().Nanosecond()%10000)
	}
	n := binary.BigEndian.Uint16(b[:]) % 10000
	return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("20060102-150405"), n)
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
