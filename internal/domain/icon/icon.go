// Package icon maps habit icon keys to their emoji, label and card colors.
package icon

// Icon describes one selectable habit icon
type Icon struct {
	ID        string `json:"id"`
	Emoji     string `json:"emoji"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CardClass string `json:"cardClass"`
	TextClass string `json:"textClass"`
}

type palette struct {
	card string
	text string
}

var colors = map[string]palette{
	"green":  {"bg-card-green", "text-habit-green"},
	"purple": {"bg-card-purple", "text-habit-purple"},
	"blue":   {"bg-card-blue", "text-habit-blue"},
	"yellow": {"bg-card-yellow", "text-habit-yellow"},
	"red":    {"bg-card-red", "text-habit-red"},
	"orange": {"bg-card-orange", "text-habit-orange"},
	"indigo": {"bg-card-indigo", "text-habit-indigo"},
	"brown":  {"bg-card-brown", "text-habit-brown"},
	"pink":   {"bg-card-pink", "text-habit-pink"},
}

// Fallback values for unknown icon keys
const (
	DefaultEmoji = "✅"
	DefaultName  = "Habit"
	DefaultColor = "default"
)

var defaultPalette = palette{"bg-card-green", "text-habit-green"}

var catalog = []Icon{
	// Prayer & spiritual
	{ID: "prayer_icon", Emoji: "🕌", Name: "Prayer", Color: "green"},
	{ID: "quran_icon", Emoji: "📖", Name: "Quran", Color: "green"},
	{ID: "tasbih_icon", Emoji: "📿", Name: "Tasbih", Color: "purple"},

	// Physical health
	{ID: "exercise_icon", Emoji: "💪", Name: "Exercise", Color: "red"},
	{ID: "workout_icon", Emoji: "🏋️‍♂️", Name: "Workout", Color: "red"},
	{ID: "run_icon", Emoji: "🏃‍♂️", Name: "Run", Color: "green"},
	{ID: "stretching_icon", Emoji: "🤸‍♂️", Name: "Stretching", Color: "green"},
	{ID: "water_icon", Emoji: "💧", Name: "Water", Color: "blue"},

	// Avoidance
	{ID: "no_phone_icon", Emoji: "📵", Name: "No Phone", Color: "red"},

	// Learning
	{ID: "book_icon", Emoji: "📚", Name: "Reading", Color: "blue"},
	{ID: "headphones_icon", Emoji: "🎧", Name: "Audio", Color: "purple"},
	{ID: "writing_icon", Emoji: "📝", Name: "Writing", Color: "green"},

	// Mindfulness
	{ID: "sleep_icon", Emoji: "😴", Name: "Sleep", Color: "blue"},
	{ID: "meditation_icon", Emoji: "🧘‍♀️", Name: "Meditation", Color: "purple"},
	{ID: "gratitude_icon", Emoji: "🙏", Name: "Gratitude", Color: "yellow"},

	// Time of day
	{ID: "sunrise_icon", Emoji: "🌅", Name: "Morning", Color: "orange"},
	{ID: "sun_icon", Emoji: "☀️", Name: "Day Time", Color: "yellow"},
	{ID: "moon_icon", Emoji: "🌙", Name: "Night Time", Color: "indigo"},
}

var byID = func() map[string]Icon {
	m := make(map[string]Icon, len(catalog))
	for _, ic := range catalog {
		m[ic.ID] = withPalette(ic)
	}
	return m
}()

func withPalette(ic Icon) Icon {
	p, ok := colors[ic.Color]
	if !ok {
		p = defaultPalette
	}
	ic.CardClass = p.card
	ic.TextClass = p.text
	return ic
}

// Lookup resolves an icon key. Unknown keys yield the default icon with ok=false.
func Lookup(id string) (Icon, bool) {
	if ic, ok := byID[id]; ok {
		return ic, true
	}
	return withPalette(Icon{ID: id, Emoji: DefaultEmoji, Name: DefaultName, Color: DefaultColor}), false
}

// All returns the selectable icons in display order
func All() []Icon {
	out := make([]Icon, len(catalog))
	for i, ic := range catalog {
		out[i] = byID[ic.ID]
	}
	return out
}
