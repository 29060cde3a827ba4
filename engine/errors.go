package engine

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrVerify reports that an archive did not decode back to its input.
	ErrVerify = errors.New("verification failed")
)

// VerifyError carries both digests of a failed verification.
type VerifyError struct {
	Algorithms []string
	Want, Got  [32]byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("verification failed for %s: want blake3 %s, got %s",
		strings.Join(e.Algorithms, ","), hex.EncodeToString(e.Want[:8]), hex.EncodeToString(e.Got[:8]))
}

func (e *VerifyError) Is(target error) bool {
	return target == ErrVerify
}
