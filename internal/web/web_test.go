package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "usuarios.html", "microrretos.html", "comunidades.html", "comunidad.html", "ranking.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "ranking.html", map[string]interface{}{"Title": "Ranking", "Error": "", "Data": nil})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ranking")
}
