package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSnapshotRestoresTypedValues(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	c := New(42)
	c.Route = "cat/cr&info"
	c.Context["page"] = "2"
	c.SaveForm("CategoryForm", map[string]Value{
		"name":     String("hats"),
		"count":    Int(3),
		"price":    Float(9.5),
		"visible":  Bool(true),
		"since":    Date(day),
		"category": Ref("7"),
		"products": RefList([]string{"1", "4"}),
		"info":     Null(),
	})

	data, err := c.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(42, data)
	require.NoError(t, err)

	assert.Equal(t, "cat/cr&info", restored.Route)
	assert.Equal(t, "2", restored.Context["page"])
	assert.Equal(t, "CategoryForm", restored.Form.Form)

	fields := restored.Form.Fields
	assert.Equal(t, KindInt, fields["count"].Kind)
	n, err := fields["count"].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	since, err := fields["since"].AsTime()
	require.NoError(t, err)
	assert.True(t, since.Equal(day))

	assert.Equal(t, []string{"1", "4"}, fields["products"].Items())
	assert.True(t, fields["info"].IsNull())

	again, err := restored.Marshal()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestUnmarshalRejectsUnknownVersion(t *testing.T) {
	_, err := Unmarshal(1, []byte(`{"version":7,"route":"x"}`))
	assert.Error(t, err)
}

func TestUnmarshalEmptyGivesFreshCursor(t *testing.T) {
	c, err := Unmarshal(5, nil)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(5), c.ParticipantID)
}

func TestFormDataIgnoresOtherForms(t *testing.T) {
	c := New(1)
	c.SaveForm("OrderForm", map[string]Value{"info": String("x")})

	assert.Empty(t, c.FormData("CategoryForm"))
	assert.Equal(t, String("x"), c.FormData("OrderForm")["info"])

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		raw     string
		want    Value
		wantErr bool
	}{
		{name: "string keeps text", kind: KindString, raw: " hello ", want: String("hello")},
		{name: "int", kind: KindInt, raw: "12", want: Int(12)},
		{name: "bad int", kind: KindInt, raw: "twelve", wantErr: true},
		{name: "float with comma", kind: KindFloat, raw: "2,5", want: Float(2.5)},
		{name: "bool", kind: KindBool, raw: "true", want: Bool(true)},
		{name: "ref list", kind: KindRefList, raw: "1, 2,,3", want: RefList([]string{"1", "2", "3"})},
		{name: "bad date", kind: KindDate, raw: "09.03.2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.kind, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %+v", got)
		})
	}
}
