// file: utils/code_generator.go
package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateTeamCode produces the human-facing code printed on the receipt,
// e.g. "GEN-7K2QX9".
func GenerateTeamCode() string {
	var sb strings.Builder
	sb.Grow(10)
	sb.WriteString("GEN-")
	for i := 0; i < 6; i++ {
		sb.WriteByte(charset[seededRand.Intn(len(charset))])
	}
	return sb.String()
}

// GenerateReceiptToken produces the idempotent receipt string sent with each
// gateway order. Every retry gets a fresh one; gateway orders are not reused
// across checkout sessions.
func GenerateReceiptToken() string {
	return fmt.Sprintf("rcpt_%s", strings.Replace(uuid.New().String(), "-", "", -1)[:24])
}
