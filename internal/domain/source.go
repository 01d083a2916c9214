package domain

import "strings"

const (
	defaultSourceFavicon = "📰"
	defaultSourceColor   = "from-blue-500 to-purple-500"
)

var knownSources = []NewsSource{
	{Name: "TechCrunch", Favicon: "🚀", Color: "from-blue-500 to-cyan-500"},
	{Name: "Reuters", Favicon: "🌍", Color: "from-green-500 to-emerald-500"},
	{Name: "Bloomberg", Favicon: "📈", Color: "from-purple-500 to-pink-500"},
	{Name: "BBC News", Favicon: "📺", Color: "from-red-500 to-orange-500"},
	{Name: "CNN", Favicon: "📰", Color: "from-blue-600 to-indigo-600"},
	{Name: "The Verge", Favicon: "💻", Color: "from-purple-600 to-blue-600"},
	{Name: "ESPN", Favicon: "⚽", Color: "from-orange-500 to-red-500"},
	{Name: "Variety", Favicon: "🎬", Color: "from-pink-500 to-purple-500"},
	{Name: "Entertainment Weekly", Favicon: "🎬", Color: "from-pink-500 to-purple-500"},
}

// KnownSources lists the publishers with curated display metadata.
func KnownSources() []NewsSource {
	out := make([]NewsSource, len(knownSources))
	copy(out, knownSources)
	return out
}

// SourceFor decorates a publisher name with its icon and color, or the generic style.
func SourceFor(name string) NewsSource {
	key := sourceKey(name)
	for _, s := range knownSources {
		if sourceKey(s.Name) == key {
			return NewsSource{Name: name, Favicon: s.Favicon, Color: s.Color}
		}
	}
	return NewsSource{Name: name, Favicon: defaultSourceFavicon, Color: defaultSourceColor}
}

func sourceKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
