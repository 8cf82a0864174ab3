package jsonlens_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anonydb/internal/jsonlens"
)

func upper(s string) string {
	return strings.ToUpper(s)
}

func TestRewrite_FieldAtRoot(t *testing.T) {
	r := jsonlens.Root().Field("name").MapString(upper)

	out, err := r.Rewrite([]byte(`{"name":"alice","age":30}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ALICE","age":30}`, string(out))
}

func TestRewrite_PreservesKeyOrder(t *testing.T) {
	r := jsonlens.Root().Field("b").MapString(upper)

	out, err := r.Rewrite([]byte(`{"z":1,"b":"hi","a":2}`))
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"b":"HI","a":2}`, string(out))
}

func TestRewrite_MissingKeyIsNoOp(t *testing.T) {
	r := jsonlens.Root().Field("missing").MapString(upper)

	out, err := r.Rewrite([]byte(`{"name":"alice"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"alice"}`, string(out))
}

func TestRewrite_NonStringLeafUntouched(t *testing.T) {
	r := jsonlens.Root().Field("age").MapString(upper)

	out, err := r.Rewrite([]byte(`{"age":30}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":30}`, string(out))
}

func TestRewrite_ArrayElements(t *testing.T) {
	r := jsonlens.Root().ArrayElements().Field("name").MapString(upper)

	out, err := r.Rewrite([]byte(`[{"name":"alice"},{"name":"bob"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"ALICE"},{"name":"BOB"}]`, string(out))
}

func TestRewrite_ArrayElementsTypeMismatchIsNoOp(t *testing.T) {
	r := jsonlens.Root().ArrayElements().Field("name").MapString(upper)

	out, err := r.Rewrite([]byte(`{"name":"not an array"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"not an array"}`, string(out))
}

func TestRewrite_FieldTypeMismatchIsNoOp(t *testing.T) {
	r := jsonlens.Root().Field("name").MapString(upper)

	out, err := r.Rewrite([]byte(`"just a string"`))
	require.NoError(t, err)
	assert.Equal(t, `"just a string"`, string(out))
}

func TestArray_WrapsPerElementRewriterWithArrayElements(t *testing.T) {
	perElement := jsonlens.Root().Field("number").MapString(func(string) string { return "***" })
	r := jsonlens.Array(perElement)

	out, err := r.Rewrite([]byte(`[{"type":"mobile","number":"555-0101"},{"type":"home","number":"555-0202"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"mobile","number":"***"},{"type":"home","number":"***"}]`, string(out))
	assert.NotContains(t, string(out), "555-0101")
}

func TestRewrite_InvalidJSONReturnsError(t *testing.T) {
	r := jsonlens.Root().Field("name").MapString(upper)

	_, err := r.Rewrite([]byte(`{not valid json`))
	require.Error(t, err)
}
