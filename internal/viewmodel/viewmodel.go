package viewmodel

// LoginPage holds data for the sign-in form.
type LoginPage struct {
	Email       string
	EmailError  string
	PassError   string
	FormError   string
	SubmitDelay int
}

// DashboardPage holds data for the folder overview.
type DashboardPage struct {
	Title         string
	UserEmail     string
	Profile       Profile
	Folders       []FolderCard
	Recents       []Shortcut
	Favorites     []Shortcut
	Activity      []ActivityBar
	WeekMinutes   int
	GoalPercent   int
	TotalStudy    string
	CurrentStreak int
	TotalSessions int
}

type Profile struct {
	Name     string
	Email    string
	Avatar   string
	Initials string
}

type FolderCard struct {
	ID          string
	Name        string
	Description string
	Cards       int
	Color       string
	URL         string
}

type Shortcut struct {
	Name     string
	IsFolder bool
}

// ActivityBar is one day of the weekly activity chart. Height is a
// percentage of the busiest day.
type ActivityBar struct {
	Day     string
	Minutes int
	Height  int
}

// LabPage holds data for the notes lab page.
type LabPage struct {
	Title      string
	UserEmail  string
	FolderID   string
	FolderName string
	Base       string
	ViewMode   string
	Canvas     CanvasFragment
	Panels     PanelsFragment
	Sidebar    SidebarFragment
	Recorder   RecorderFragment
	Recordings RecordingsFragment
	MindMap    MindMapFragment
	Study      StudyFragment
}

// CanvasFragment holds data for the infinite canvas.
type CanvasFragment struct {
	Base         string
	ViewMode     string
	OffsetX      float64
	OffsetY      float64
	Scale        float64
	ScalePercent int
	Organizing   bool
	Items        []CanvasCard
}

type CanvasCard struct {
	ID       string
	Kind     string
	Title    string
	Content  string
	Color    string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Tags     []TagChip
	Dragging bool
}

type TagChip struct {
	Name  string
	Color string
}

// KindOption is an entry of the add-tab menu.
type KindOption struct {
	Kind  string
	Label string
	Color string
}

// PanelsFragment holds data for the tab panels view.
type PanelsFragment struct {
	Base    string
	Panels  []PanelView
	Kinds   []KindOption
	Palette []string
}

type PanelView struct {
	ID        string
	Title     string
	Width     float64
	ShowIcons bool
	ActiveID  string
	Active    TabView
	HasActive bool
	Tabs      []TabView
}

type TabView struct {
	ID        string
	Kind      string
	Title     string
	Color     string
	ParentID  string
	Depth     int
	Children  int
	IsActive  bool
	Minimized bool
	Tags      []TagChip
}

// SidebarFragment holds data for the left sidebar.
type SidebarFragment struct {
	Base         string
	View         string
	Collapsed    bool
	Query        string
	SelectedTags []string
	Topics       []TopicView
	RawData      []EntryView
	Tags         []TagView
}

type TopicView struct {
	Name    string
	Entries []EntryView
}

type EntryView struct {
	ID    string
	Kind  string
	Title string
	Tags  []TagChip
}

type TagView struct {
	ID       string
	Name     string
	Color    string
	Count    int
	Selected bool
}

// RecorderFragment holds data for the recording popout.
type RecorderFragment struct {
	Base         string
	Recording    bool
	Transcribing bool
	Clock        string
}

// RecordingsFragment holds data for the voice database list.
type RecordingsFragment struct {
	Base       string
	Recordings []RecordingView
}

type RecordingView struct {
	ID         string
	Title      string
	Duration   string
	Transcript string
	LinkedNote string
	Age        string
	Playing    bool
}

// MindMapFragment holds data for the mind map editor.
type MindMapFragment struct {
	Base        string
	Nodes       []NodeView
	Connections []ConnectionView
}

type NodeView struct {
	ID    string
	Label string
	Color string
	X     float64
	Y     float64
}

type ConnectionView struct {
	ID    string
	Label string
	Color string
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
}

// StudyFragment holds data for the study mode dialog.
type StudyFragment struct {
	Base     string
	Open     bool
	Step     string
	Options  []StudyOption
	Methods  []MethodOption
	CanStart bool
	Question string
	Answer   string
	Revealed bool
	Number   int
	Total    int
	Progress int
}

type StudyOption struct {
	ID        string
	Kind      string
	Title     string
	Questions int
	Selected  bool
}

type MethodOption struct {
	Method   string
	Label    string
	Selected bool
}
