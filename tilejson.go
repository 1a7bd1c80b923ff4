package n3m

import "encoding/json"

const (
	TILEJSON_VERSION = "2.2.0"
	N3M_FORMAT       = "n3m"
	N3M_SCHEME       = "xyz"
)

type TileJson struct {
	Tilejson    string      `json:"tilejson"`
	Name        *string     `json:"name,omitempty"`
	Version     string      `json:"version,omitempty"`
	Format      string      `json:"format,omitempty"`
	Attribution interface{} `json:"attribution,omitempty"`
	Scheme      string      `json:"scheme"`
	Tiles       []string    `json:"tiles"`
	Minzoom     *int        `json:"minzoom,omitempty"`
	Maxzoom     *int        `json:"maxzoom,omitempty"`
	Bounds      []float64   `json:"bounds,omitempty"`
	Projection  string      `json:"projection"`
	Extensions  []string    `json:"extensions,omitempty"`
	LUTZoom     int         `json:"lutzoom"`
}

// NewTileJson describes an n3m tileset served from endpoint. Tile URLs are
// the endpoint template with the {shard} and {path} placeholders.
func NewTileJson(name string, minzoom int, maxzoom int, endpoint Endpoint) *TileJson {
	template := endpoint.Template
	if template == "" {
		template = DefaultEndpoint
	}
	return &TileJson{
		Tilejson:   TILEJSON_VERSION,
		Name:       &name,
		Version:    "1.0.0",
		Format:     N3M_FORMAT,
		Scheme:     N3M_SCHEME,
		Tiles:      []string{template},
		Minzoom:    &minzoom,
		Maxzoom:    &maxzoom,
		Bounds:     []float64{-180, -85.0511287798066, 180, 85.0511287798066},
		Projection: "EPSG:3857",
		Extensions: []string{MeshExtension, LUTExtension, TextureExtension},
		LUTZoom:    LUTZoom,
	}
}

func (t *TileJson) Marshal() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
