package view

import (
	"Darugi/internal/api/dto"
	"reflect"
	"testing"

	"github.com/fatih/structtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formFields 读取结构体的 form 标签
func formFields(t *testing.T, v any) []string {
	t.Helper()
	typ := reflect.TypeOf(v)
	var names []string
	for i := 0; i < typ.NumField(); i++ {
		tags, err := structtag.Parse(string(typ.Field(i).Tag))
		require.NoError(t, err)
		tag, err := tags.Get("form")
		require.NoError(t, err, typ.Field(i).Name)
		names = append(names, tag.Name)
	}
	return names
}

// 模板中的表单字段与绑定结构体保持一致
func TestFormContract(t *testing.T) {
	r := newTestRenderer(t, false)

	out, err := r.Render(PageAdminForm, Page{Data: &dto.PostFormView{ID: 1}})
	require.NoError(t, err)
	for _, name := range formFields(t, dto.PostSaveDTO{}) {
		assert.Contains(t, string(out), `name="`+name+`"`)
	}

	out, err = r.Render(PagePost, Page{Data: &dto.PostView{Post: &dto.PostDetailDTO{ID: 1, Slug: "a"}}})
	require.NoError(t, err)
	for _, name := range formFields(t, dto.CommentCreateDTO{}) {
		assert.Contains(t, string(out), `name="`+name+`"`)
	}
}
