package definition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMergesOverDefaults(t *testing.T) {
	data := []byte(`{
		"id": "Fortnite",
		"dxvk_required": false,
		"winetricks": ["vcrun2019", "d3dx9"],
		"copy_file": [{"src": "{GAMEDIR}/a.dll", "dst": "{WINEDIR}/drive_c/a.dll", "symlink": true}],
		"some_future_key": 42
	}`)

	d := Default("Fortnite", RunnerLegendary)
	require.NoError(t, Decode(data, d))

	want := Default("Fortnite", RunnerLegendary)
	want.DXVKRequired = false
	want.Winetricks = []string{"vcrun2019", "d3dx9"}
	want.CopyFile = []CopyFile{{Src: "{GAMEDIR}/a.dll", Dst: "{WINEDIR}/drive_c/a.dll", Symlink: true}}

	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("decoded definition mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeNullListBecomesEmpty(t *testing.T) {
	d := Default("x", RunnerGOG)
	require.NoError(t, Decode([]byte(`{"regedit": null}`), d))
	assert.NotNil(t, d.Regedit)
	assert.Empty(t, d.Regedit)
}

func TestDecodeInvalidJSON(t *testing.T) {
	err := Decode([]byte(`{"id": `), Default("x", RunnerGOG))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode definition")
}

func TestEncodeDropsUnknownKeys(t *testing.T) {
	d := Default("x", RunnerGOG)
	require.NoError(t, Decode([]byte(`{"unknown": true}`), d))

	data, err := Encode(d)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "unknown")
}

func TestEncodeRoundTripPreservesOrder(t *testing.T) {
	d := Default("x", RunnerLegendary)
	d.Regedit = []RegEdit{
		{Folder: `HKCU\A`},
		{Folder: `HKCU\B`, Name: "n", Type: RegDWORD, Value: "1", Arch: true},
	}

	data, err := Encode(d)
	require.NoError(t, err)

	back := Default("x", RunnerLegendary)
	require.NoError(t, Decode(data, back))
	require.Len(t, back.Regedit, 2)
	assert.Equal(t, `HKCU\A`, back.Regedit[0].Folder)
	assert.Equal(t, `HKCU\B`, back.Regedit[1].Folder)
	assert.True(t, back.Regedit[1].Arch)
}

func TestSameContent(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "identical",
			a:    `{"id":"x","winetricks":["a"]}`,
			b:    `{"id":"x","winetricks":["a"]}`,
			want: true,
		},
		{
			name: "key order and whitespace ignored",
			a:    `{"id":"x","title":"T"}`,
			b:    "{\n  \"title\": \"T\",\n  \"id\": \"x\"\n}",
			want: true,
		},
		{
			name: "executed ignored",
			a:    `{"id":"x","executed":true}`,
			b:    `{"id":"x","executed":false}`,
			want: true,
		},
		{
			name: "executed missing on one side",
			a:    `{"id":"x","executed":true}`,
			b:    `{"id":"x"}`,
			want: true,
		},
		{
			name: "nested executed is content",
			a:    `{"id":"x","copy_file":[{"executed":true}]}`,
			b:    `{"id":"x","copy_file":[{"executed":false}]}`,
			want: false,
		},
		{
			name: "list order matters",
			a:    `{"winetricks":["a","b"]}`,
			b:    `{"winetricks":["b","a"]}`,
			want: false,
		},
		{
			name: "extra key on one side",
			a:    `{"id":"x"}`,
			b:    `{"id":"x","title":"T"}`,
			want: false,
		},
		{
			name: "nested key order ignored",
			a:    `{"copy_file":[{"src":"a","dst":"b"}]}`,
			b:    `{"copy_file":[{"dst":"b","src":"a"}]}`,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SameContent([]byte(tt.a), []byte(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameContentInvalid(t *testing.T) {
	_, err := SameContent([]byte(`{}`), []byte(`not json`))
	require.Error(t, err)
}

func TestContentKeyDoesNotMutate(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"id":"x","executed":true}`))
	require.NoError(t, err)

	key, err := ContentKey(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(key))
	assert.Contains(t, doc, ExecutedKey)
}
