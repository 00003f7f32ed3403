package theme

func init() {
	Register(Theme{ID: "01", Name: "Sentinel Red", Primary: "#ff003c", Secondary: "#00e6ff"})
	Register(Theme{ID: "02", Name: "Deep Blue", Primary: "#2962ff", Secondary: "#ffab40"})
	Register(Theme{ID: "03", Name: "Neo Green", Primary: "#00e676", Secondary: "#ff00e6"})
	Register(Theme{ID: "04", Name: "Cyber Violet", Primary: "#a000ff", Secondary: "#fffb00"})
	Register(Theme{ID: "05", Name: "Gold Circuit", Primary: "#ffd740", Secondary: "#18ffff"})
}
