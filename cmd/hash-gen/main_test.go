package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"warranty-register.backend/pkg/crypto"
)

func stubOutput(t *testing.T) (*[]string, *[]string) {
	t.Helper()
	origPrintf, origFatalf := printfFn, fatalfFn
	t.Cleanup(func() { printfFn, fatalfFn = origPrintf, origFatalf })

	var printed, fatals []string
	printfFn = func(format string, args ...interface{}) (int, error) {
		printed = append(printed, fmt.Sprintf(format, args...))
		return 0, nil
	}
	fatalfFn = func(format string, args ...interface{}) {
		fatals = append(fatals, fmt.Sprintf(format, args...))
	}
	return &printed, &fatals
}

func TestRun_PrintsVerifiableHash(t *testing.T) {
	printed, fatals := stubOutput(t)

	run([]string{"operator-secret"})

	require.Empty(t, *fatals)
	require.Len(t, *printed, 1)
	out := (*printed)[0]
	require.True(t, strings.HasPrefix(out, "ADMIN_PASSWORD_HASH="))
	assert.NotContains(t, out, "operator-secret")

	hash := strings.TrimSpace(strings.TrimPrefix(out, "ADMIN_PASSWORD_HASH="))
	assert.True(t, crypto.CheckPassword("operator-secret", hash))
}

func TestRun_RequiresPassword(t *testing.T) {
	printed, fatals := stubOutput(t)

	run(nil)

	assert.Empty(t, *printed)
	require.Len(t, *fatals, 1)
	assert.Contains(t, (*fatals)[0], "usage")
}

func TestRun_HashFailure(t *testing.T) {
	_, fatals := stubOutput(t)
	origGen := generateHashFn
	t.Cleanup(func() { generateHashFn = origGen })
	generateHashFn = func(string) (string, error) {
		return "", fmt.Errorf("entropy exhausted")
	}

	run([]string{"x"})

	require.Len(t, *fatals, 1)
	assert.Contains(t, (*fatals)[0], "entropy exhausted")
}
