package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportManager(t *testing.T) {
	im := NewImportManager()
	assert.Equal(t, "", im.GenerateImports())

	im.AddImport(`\App\Models\Post`)
	im.AddImports(`App\Models\User`, `App\Models\Post`, "", "  ")
	im.AddImport(`Laravel\Sanctum\Sanctum`)

	assert.Equal(t, 3, im.Len())
	assert.True(t, im.Has(`\App\Models\User`))
	assert.False(t, im.Has(`App\Models\Comment`))
	assert.Equal(t, []string{`App\Models\Post`, `App\Models\User`, `Laravel\Sanctum\Sanctum`}, im.Imports())
	assert.Equal(t, "use App\\Models\\Post;\nuse App\\Models\\User;\nuse Laravel\\Sanctum\\Sanctum;\n", im.GenerateImports())
}

func TestImportManager_Merge(t *testing.T) {
	base := NewImportManager()
	base.AddImports(`App\Models\Post`, `App\Models\User`)

	other := NewImportManager()
	other.AddImports(`App\Models\User`, `App\Models\Post`, `App\Models\Blog`)
	base.Merge(other)
	assert.Equal(t, []string{`App\Models\Post`, `App\Models\User`, `App\Models\Blog`}, base.Imports())
	assert.Equal(t, 3, other.Len())
}
