package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParamID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"abc", "0", "-1", ""} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := ParamID(c, "id")
		assert.Error(t, err, raw)
	}
}

func TestQueryBool(t *testing.T) {
	truth := true
	cases := []struct {
		name    string
		target  string
		want    *bool
		wantErr bool
	}{
		{name: "true", target: "/progresos/?completado=true", want: &truth},
		{name: "absent", target: "/progresos/"},
		{name: "empty", target: "/progresos/?completado="},
		{name: "invalid", target: "/progresos/?completado=quizas", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// gin 会缓存解析后的查询参数，每个用例使用新的上下文
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tc.target, nil)

			v, err := QueryBool(c, "completado")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}
