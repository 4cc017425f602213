package workspace

// Kind is the type of a tab or canvas item.
type Kind string

const (
	KindNote            Kind = "note"
	KindVoiceRecording  Kind = "voice-recording"
	KindVoiceDatabase   Kind = "voice-database"
	KindVoiceTranscript Kind = "voice-transcript"
	KindFlashcards      Kind = "flashcards"
	KindMindMap         Kind = "mindmap"
	KindPDF             Kind = "pdf"
	KindCalculator      Kind = "calculator"
	KindWeb             Kind = "web"
	KindCode            Kind = "code"
	KindMusic           Kind = "music"
	KindImage           Kind = "image"
	KindVideo           Kind = "video"
	KindCalendar        Kind = "calendar"
	KindMail            Kind = "mail"
	KindChat            Kind = "chat"
)

// KindInfo is the default label and color for new tabs of a kind.
type KindInfo struct {
	Kind  Kind
	Label string
	Color string
}

var kinds = []KindInfo{
	{KindNote, "Note", "bg-blue-500"},
	{KindVoiceRecording, "Voice Recording", "bg-red-500"},
	{KindVoiceDatabase, "Voice Database", "bg-purple-500"},
	{KindVoiceTranscript, "Voice Transcript", "bg-green-500"},
	{KindFlashcards, "Flashcards", "bg-orange-500"},
	{KindMindMap, "Mind Map", "bg-pink-500"},
	{KindPDF, "PDF", "bg-red-600"},
	{KindCalculator, "Calculator", "bg-gray-500"},
	{KindWeb, "Web Browser", "bg-cyan-500"},
	{KindCode, "Code Editor", "bg-indigo-500"},
	{KindMusic, "Music Player", "bg-violet-500"},
	{KindImage, "Image Viewer", "bg-emerald-500"},
	{KindVideo, "Video Player", "bg-rose-500"},
	{KindCalendar, "Calendar", "bg-amber-500"},
	{KindMail, "Email", "bg-teal-500"},
	{KindChat, "Chat", "bg-lime-500"},
}

// Kinds lists every tab kind in menu order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kinds))
	copy(out, kinds)
	return out
}

// LookupKind returns the registry entry for k.
func LookupKind(k Kind) (KindInfo, bool) {
	for _, info := range kinds {
		if info.Kind == k {
			return info, true
		}
	}
	return KindInfo{}, false
}

// Palette is offered by the tab color picker and used for new tags.
var Palette = []string{
	"bg-red-500",
	"bg-blue-500",
	"bg-green-500",
	"bg-yellow-500",
	"bg-purple-500",
	"bg-pink-500",
}
