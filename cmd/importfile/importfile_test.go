package importfile_test

import (
	"testing"

	"poupafin/extrato/cmd/importfile"

	"github.com/stretchr/testify/assert"
)

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import", importfile.Cmd.Use)
	assert.Contains(t, importfile.Cmd.Short, "Import")
	assert.Contains(t, importfile.Cmd.Long, "financial period")
	assert.NotNil(t, importfile.Cmd.Run)
}

func TestImportCommand_Flags(t *testing.T) {
	assert.NotNil(t, importfile.Cmd.Flags().Lookup("user"))
	assert.NotNil(t, importfile.Cmd.Flags().Lookup("dry-run"))
}
