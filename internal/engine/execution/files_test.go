package execution_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestReadFile_Memoizes(t *testing.T) {
	f := newFixture(t)
	ec := f.context(domain.Flags{DryRun: true})

	f.files.EXPECT().ReadFile("VERSION").Return("1.2.3\n", nil).Times(1)

	ctx := context.Background()
	assert.Equal(t, "1.2.3\n", ec.ReadFile(ctx, "VERSION"))
	assert.Equal(t, "1.2.3\n", ec.ReadFile(ctx, "VERSION"))
}

func TestReadFile_FailureIsFatalAndReplayed(t *testing.T) {
	f := newFixture(t)
	ec := f.context(domain.Flags{})

	f.files.EXPECT().ReadFile("missing").Return("", errors.New("no such file")).Times(1)

	ctx := context.Background()
	for range 2 {
		assert.PanicsWithValue(t, exitCalled{code: 1}, func() {
			ec.ReadFile(ctx, "missing")
		})
	}
	assert.Equal(t, []string{
		"failed to read missing: no such file",
		"failed to read missing: no such file",
	}, f.logger.fatals)
}

func TestContentHash(t *testing.T) {
	f := newFixture(t)
	ec := f.context(domain.Flags{})

	f.files.EXPECT().ReadFile("go.sum").Return("contents", nil).Times(1)

	ctx := context.Background()
	got := ec.ContentHash(ctx, "go.sum")
	assert.Len(t, got, 16)
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64String("contents")), got)
	assert.Equal(t, "contents", ec.ReadFile(ctx, "go.sum"))
}

func TestPathExists_Memoizes(t *testing.T) {
	f := newFixture(t)
	ec := f.context(domain.Flags{})

	f.files.EXPECT().Exists("build").Return(true).Times(1)
	f.files.EXPECT().Exists("dist").Return(false).Times(1)

	assert.True(t, ec.PathExists("build"))
	assert.True(t, ec.PathExists("build"))
	assert.False(t, ec.PathExists("dist"))
	assert.False(t, ec.PathExists("dist"))
}

func TestCaches_AreIndependent(t *testing.T) {
	f := newFixture(t)
	ec := f.context(domain.Flags{})

	f.runner.EXPECT().Run(gomock.Any(), domain.NewCommand("Makefile"), gomock.Any(), gomock.Any()).Return(success(""), nil)
	f.files.EXPECT().ReadFile("Makefile").Return("all:\n", nil)
	f.files.EXPECT().Exists("Makefile").Return(true)

	ctx := context.Background()
	_, err := ec.Run(ctx, domain.NewCommand("Makefile"), domain.OutputDiscard, domain.OutputDiscard)
	require.NoError(t, err)
	assert.Equal(t, "all:\n", ec.ReadFile(ctx, "Makefile"))
	assert.True(t, ec.PathExists("Makefile"))
}
