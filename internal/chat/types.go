package chat

// ChatKind distinguishes one-to-one conversations from groups.
type ChatKind string

const (
	KindDirect ChatKind = "direct"
	KindGroup  ChatKind = "group"
)

// MediaKind is the attachment variant carried by a message.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaFile  MediaKind = "file"
)

// Media is an optional attachment on a message.
type Media struct {
	Kind   MediaKind
	URL    string
	Name   string
	Size   int64
	Width  int
	Height int
}

// Reaction is an emoji attached to a message by a user.
type Reaction struct {
	Emoji  string
	UserID string
}

// ForwardInfo records the origin of a forwarded message.
type ForwardInfo struct {
	ChatID     string
	ChatName   string
	SenderName string
}

// Message is a single authored unit of chat content.
//
// Once created a message is immutable except for its flags: Read, Saved
// and Deleted are toggled in place by user actions. Deleted is a flag,
// never physical removal; the text is kept.
type Message struct {
	ID         string
	ChatID     string
	SenderID   string
	SenderName string
	Text       string
	Timestamp  int64 // unix milliseconds

	Read    bool
	Saved   bool
	Deleted bool

	Media     *Media
	Reactions []Reaction
	ReplyToID string
	Forwarded *ForwardInfo
}

// Member is a group participant with an optional admin flag.
type Member struct {
	ID    string
	Name  string
	Admin bool
}

// Chat is a conversation with its latest-message summary.
//
// LastMessageAt and LastMessageText mirror the newest message in the
// chat; the store maintains that invariant on every append.
type Chat struct {
	ID              string
	Name            string
	Kind            ChatKind
	Participants    []string
	Members         []Member
	LastMessageText string
	LastMessageAt   int64 // unix milliseconds
	UnreadCount     int
	Muted           bool
	AvatarURL       string
}

// User is a directory entry for a chat participant.
type User struct {
	ID       string
	Name     string
	Avatar   string
	Status   string
	LastSeen int64 // unix milliseconds
	Online   bool
}
