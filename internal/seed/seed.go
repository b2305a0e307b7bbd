// Package seed builds the demo dataset. There is no backend; every
// profile starts from the same fixture with timestamps anchored to the
// current time so recency ordering stays realistic.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plumechat/plume/internal/chat"
)

// SelfID is the local user in every conversation.
const SelfID = "user1"

// Fixture is the full demo dataset.
type Fixture struct {
	Chats    []chat.Chat
	Messages []chat.Message
	Users    []chat.User
}

// Apply loads the fixture into the store.
func Apply(s *chat.Store, f Fixture) {
	s.Seed(f.Chats, f.Messages, f.Users)
}

// seedNS namespaces the deterministic fixture IDs. Stable IDs let
// per-message preferences (pins, reactions, delivery) persisted in a
// previous run resolve against the regenerated fixture.
var seedNS = uuid.NewSHA1(uuid.NameSpaceOID, []byte("plume.seed"))

func seedID(name string) string {
	return uuid.NewSHA1(seedNS, []byte(name)).String()
}

// Build assembles the fixture relative to now.
func Build(now time.Time) Fixture {
	base := now.UnixMilli()
	ago := func(d time.Duration) int64 { return base - d.Milliseconds() }

	frontendID := seedID("chat/frontend")
	brainstormID := seedID("chat/brainstorm")
	sarahID := seedID("chat/sarah")
	uxID := seedID("chat/ux")
	michaelID := seedID("chat/michael")
	hackathonID := seedID("chat/hackathon")
	apiID := seedID("chat/api")
	conferenceID := seedID("chat/conference")

	chats := []chat.Chat{
		{
			ID:           frontendID,
			Name:         "Frontend Team",
			Kind:         chat.KindGroup,
			Participants: []string{"user1", "user2", "user3", "user4"},
			Members: []chat.Member{
				{ID: "user1", Name: "You", Admin: true},
				{ID: "user2", Name: "Alex Johnson"},
				{ID: "user3", Name: "Taylor Reed"},
				{ID: "user4", Name: "John Smith"},
			},
			LastMessageText: "I've fixed that accessibility issue on the dropdown component",
			LastMessageAt:   ago(5 * time.Minute),
			UnreadCount:     3,
		},
		{
			ID:           brainstormID,
			Name:         "Project Brainstorm",
			Kind:         chat.KindGroup,
			Participants: []string{"user1", "user2", "user5"},
			Members: []chat.Member{
				{ID: "user1", Name: "You"},
				{ID: "user2", Name: "Alex Johnson", Admin: true},
				{ID: "user5", Name: "Emma Parker"},
			},
			LastMessageText: "I've attached a few examples of animation libraries we could use",
			LastMessageAt:   ago(20 * time.Minute),
			Muted:           true,
		},
		{
			ID:           sarahID,
			Name:         "Sarah Johnson",
			Kind:         chat.KindDirect,
			Participants: []string{"user1", "user6"},
			Members: []chat.Member{
				{ID: "user1", Name: "You"},
				{ID: "user6", Name: "Sarah Johnson"},
			},
			LastMessageText: "Let me know when we can discuss the feedback from the client",
			LastMessageAt:   ago(time.Hour),
			UnreadCount:     1,
		},
		{
			ID:           uxID,
			Name:         "UX Research Team",
			Kind:         chat.KindGroup,
			Participants: []string{"user1", "user7", "user8", "user9"},
			Members: []chat.Member{
				{ID: "user1", Name: "You"},
				{ID: "user7", Name: "Maya Rodriguez", Admin: true},
				{ID: "user8", Name: "David Kim"},
				{ID: "user9", Name: "Priya Patel"},
			},
			LastMessageText: "The user testing results have been analyzed - check out the insights!",
			LastMessageAt:   ago(3 * time.Hour),
			UnreadCount:     5,
		},
		{
			ID:           michaelID,
			Name:         "Michael Chen",
			Kind:         chat.KindDirect,
			Participants: []string{"user1", "user10"},
			Members: []chat.Member{
				{ID: "user1", Name: "You"},
				{ID: "user10", Name: "Michael Chen"},
			},
			LastMessageText: "Thanks for the code review! I've addressed all your comments",
			LastMessageAt:   ago(8 * time.Hour),
		},
		{
			ID:           hackathonID,
			Name:         "Hackathon 2026",
			Kind:         chat.KindGroup,
			Participants: []string{"user1", "user11", "user12", "user13", "user14"},
			Members: []chat.Member{
				{ID: "user1", Name: "You"},
				{ID: "user11", Name: "Olivia Wilson", Admin: true},
				{ID: "user12", Name: "Ethan Brown"},
				{ID: "user13", Name: "Sophie Lee"},
				{ID: "user14", Name: "Noah Garcia"},
			},
			LastMessageText: "We won first place! 🏆 Celebratory lunch tomorrow?",
			LastMessageAt:   ago(24 * time.Hour),
			UnreadCount:     2,
		},
		{
			ID:           apiID,
			Name:         "API Integration",
			Kind:         chat.KindGroup,
			Participants: []string{"user1", "user15", "user16"},
			Members: []chat.Member{
				{ID: "user1", Name: "You", Admin: true},
				{ID: "user15", Name: "Liam Scott"},
				{ID: "user16", Name: "Emma Davis"},
			},
			LastMessageText: "The authentication middleware is now working correctly",
			LastMessageAt:   ago(48 * time.Hour),
			Muted:           true,
		},
		{
			ID:           conferenceID,
			Name:         "Conference Planning",
			Kind:         chat.KindGroup,
			Participants: []string{"user1", "user20", "user21", "user23"},
			Members: []chat.Member{
				{ID: "user1", Name: "You"},
				{ID: "user20", Name: "Daniel Thomas", Admin: true},
				{ID: "user21", Name: "Ava Robinson", Admin: true},
				{ID: "user23", Name: "Grace Hall"},
			},
			LastMessageText: "The speaker list has been finalized - check the spreadsheet",
			LastMessageAt:   ago(5 * 24 * time.Hour),
			UnreadCount:     7,
		},
	}

	authErrorID := seedID("msg/api/auth-error")

	messages := []chat.Message{
		// Frontend Team
		{
			ChatID:frontendID,
			SenderID: "user2", SenderName: "Alex Johnson",
			Text:      "Hey team, I've just pushed the latest updates to the design system",
			Timestamp: ago(2 * time.Hour),
		},
		{
			ChatID:frontendID,
			SenderID: "user3", SenderName: "Taylor Reed",
			Text:      "Looks great! I especially like the new button styles",
			Timestamp: ago(114 * time.Minute),
		},
		{
			ChatID:frontendID,
			SenderID: "user2", SenderName: "Alex Johnson",
			Text:      "I've also added a prototype for mobile views",
			Timestamp: ago(102 * time.Minute),
			Media: &chat.Media{
				Kind: chat.MediaImage,
				URL:  "#",
				Name: "mobile-prototype.png",
				Size: 1240000,
			},
		},
		{
			ChatID:frontendID,
			SenderID: SelfID, SenderName: "You",
			Text:      "I've fixed that accessibility issue on the dropdown component",
			Timestamp: ago(5 * time.Minute),
			Read:      true,
		},

		// Project Brainstorm
		{
			ChatID:brainstormID,
			SenderID: "user5", SenderName: "Emma Parker",
			Text:      "What frameworks are we considering for the new project?",
			Timestamp: ago(4 * time.Hour),
		},
		{
			ChatID:brainstormID,
			SenderID: SelfID, SenderName: "You",
			Text:      "Good point. Let's settle it in the planning call",
			Timestamp: ago(222 * time.Minute),
			Read:      true,
		},
		{
			ChatID:brainstormID,
			SenderID: "user2", SenderName: "Alex Johnson",
			Text:      "I've attached a few examples of animation libraries we could use",
			Timestamp: ago(20 * time.Minute),
			Media: &chat.Media{
				Kind: chat.MediaFile,
				URL:  "#",
				Name: "animation-libraries.pdf",
				Size: 4750000,
			},
		},

		// Sarah Johnson
		{
			ChatID:sarahID,
			SenderID: "user6", SenderName: "Sarah Johnson",
			Text:      "Hi, I've finished the quarterly report",
			Timestamp: ago(5 * time.Hour),
		},
		{
			ChatID:sarahID,
			SenderID: SelfID, SenderName: "You",
			Text:      "Great! Can you share it with me?",
			Timestamp: ago(294 * time.Minute),
			Read:      true,
		},
		{
			ChatID:sarahID,
			SenderID: "user6", SenderName: "Sarah Johnson",
			Text:      "Sure, here you go. Let me know if you need any changes",
			Timestamp: ago(288 * time.Minute),
			Media: &chat.Media{
				Kind: chat.MediaFile,
				URL:  "#",
				Name: "Q2-2026-Report.pdf",
				Size: 3450000,
			},
		},
		{
			ChatID:sarahID,
			SenderID: "user6", SenderName: "Sarah Johnson",
			Text:      "Let me know when we can discuss the feedback from the client",
			Timestamp: ago(time.Hour),
		},

		// UX Research Team
		{
			ChatID:uxID,
			SenderID: "user7", SenderName: "Maya Rodriguez",
			Text:      "Team, we've completed the first round of user testing for the new checkout flow",
			Timestamp: ago(6 * time.Hour),
		},
		{
			ChatID:uxID,
			SenderID: "user8", SenderName: "David Kim",
			Text:      "How many participants did we have?",
			Timestamp: ago(354 * time.Minute),
		},
		{
			ChatID:uxID,
			SenderID: "user9", SenderName: "Priya Patel",
			Text:      "Here's a recording of one of the test sessions",
			Timestamp: ago(342 * time.Minute),
			Media: &chat.Media{
				Kind: chat.MediaVideo,
				URL:  "#",
				Name: "user-test-session3.mp4",
				Size: 102400000,
			},
		},
		{
			ChatID:uxID,
			SenderID: "user7", SenderName: "Maya Rodriguez",
			Text:      "The user testing results have been analyzed - check out the insights!",
			Timestamp: ago(3 * time.Hour),
			Media: &chat.Media{
				Kind: chat.MediaFile,
				URL:  "#",
				Name: "ux-research-findings.pdf",
				Size: 8750000,
			},
		},

		// Michael Chen
		{
			ChatID:michaelID,
			SenderID: "user10", SenderName: "Michael Chen",
			Text:      "Thanks for the code review! I've addressed all your comments",
			Timestamp: ago(8 * time.Hour),
		},

		// Hackathon 2026
		{
			ChatID:hackathonID,
			SenderID: "user11", SenderName: "Olivia Wilson",
			Text:      "Team, we need to submit our hackathon project by tomorrow at 5 PM",
			Timestamp: ago(48 * time.Hour),
			Saved:     true,
		},
		{
			ChatID:hackathonID,
			SenderID: "user13", SenderName: "Sophie Lee",
			Text:      "I could use some help with the AI integration",
			Timestamp: ago(46 * time.Hour),
		},
		{
			ChatID:hackathonID,
			SenderID: "user11", SenderName: "Olivia Wilson",
			Text:      "We've been announced as finalists! Presentation is in 30 minutes",
			Timestamp: ago(36 * time.Hour),
			Reactions: []chat.Reaction{
				{Emoji: "👍", UserID: "user12"},
				{Emoji: "❤️", UserID: "user13"},
				{Emoji: "❤️", UserID: "user14"},
			},
		},
		{
			ChatID:hackathonID,
			SenderID: "user11", SenderName: "Olivia Wilson",
			Text:      "We won first place! 🏆 Celebratory lunch tomorrow?",
			Timestamp: ago(24 * time.Hour),
			Reactions: []chat.Reaction{
				{Emoji: "👍", UserID: "user12"},
				{Emoji: "👍", UserID: "user13"},
				{Emoji: "❤️", UserID: "user1"},
			},
		},

		// API Integration
		{
			ID: authErrorID, ChatID: apiID,
			SenderID: "user15", SenderName: "Liam Scott",
			Text:      "I'm having trouble with the auth middleware - getting 401 errors",
			Timestamp: ago(72 * time.Hour),
		},
		{
			ChatID:apiID,
			SenderID: SelfID, SenderName: "You",
			Text:      "Make sure you're using 'Bearer ' prefix before the token",
			Timestamp: ago(71 * time.Hour),
			Read:      true,
			ReplyToID: authErrorID,
		},
		{
			ChatID:apiID,
			SenderID: "user15", SenderName: "Liam Scott",
			Text:      "That was it! I forgot the Bearer prefix. Thanks!",
			Timestamp: ago(70 * time.Hour),
		},
		{
			ChatID:apiID,
			SenderID: SelfID, SenderName: "You",
			Text:      "The authentication middleware is now working correctly",
			Timestamp: ago(48 * time.Hour),
			Read:      true,
		},

		// Conference Planning
		{
			ChatID:conferenceID,
			SenderID: "user20", SenderName: "Daniel Thomas",
			Text:      "The tech conference planning is in full swing. We need to finalize speakers by Friday",
			Timestamp: ago(7 * 24 * time.Hour),
		},
		{
			ChatID:conferenceID,
			SenderID: "user21", SenderName: "Ava Robinson",
			Text:      "I've contacted all the potential speakers - here's their availability",
			Timestamp: ago(6 * 24 * time.Hour),
			Media: &chat.Media{
				Kind: chat.MediaFile,
				URL:  "#",
				Name: "speaker-availability.xlsx",
				Size: 2340000,
			},
			Saved: true,
		},
		{
			ChatID:conferenceID,
			SenderID: "user23", SenderName: "Grace Hall",
			Text:      "The speaker list has been finalized - check the spreadsheet",
			Timestamp: ago(5 * 24 * time.Hour),
			Forwarded: &chat.ForwardInfo{
				ChatID:     "chat-organizers",
				ChatName:   "Conference Organizers",
				SenderName: "Conference Committee",
			},
		},
	}

	users := []chat.User{
		{ID: "user1", Name: "You", Status: "Available", LastSeen: base, Online: true},
		{ID: "user2", Name: "Alex Johnson", Status: "In a meeting", LastSeen: ago(30 * time.Minute), Online: true},
		{ID: "user3", Name: "Taylor Reed", Status: "Busy", LastSeen: ago(time.Hour)},
		{ID: "user4", Name: "John Smith", Status: "At the gym", LastSeen: ago(2 * time.Hour)},
		{ID: "user5", Name: "Emma Parker", Status: "At work", LastSeen: ago(15 * time.Minute), Online: true},
		{ID: "user6", Name: "Sarah Johnson", Status: "Available", LastSeen: ago(5 * time.Minute), Online: true},
		{ID: "user7", Name: "Maya Rodriguez", Status: "On vacation", LastSeen: ago(3 * 24 * time.Hour)},
		{ID: "user8", Name: "David Kim", Status: "Coding", LastSeen: ago(3 * time.Hour)},
		{ID: "user9", Name: "Priya Patel", Status: "At work", LastSeen: ago(30 * time.Minute), Online: true},
		{ID: "user10", Name: "Michael Chen", Status: "In transit", LastSeen: ago(45 * time.Minute), Online: true},
		{ID: "user11", Name: "Olivia Wilson", Status: "Do not disturb", LastSeen: ago(2 * time.Hour)},
		{ID: "user12", Name: "Ethan Brown", Status: "Available", LastSeen: ago(20 * time.Minute), Online: true},
		{ID: "user13", Name: "Sophie Lee", Status: "Studying", LastSeen: ago(4 * time.Hour)},
		{ID: "user14", Name: "Noah Garcia", Status: "Available", LastSeen: ago(10 * time.Minute), Online: true},
		{ID: "user15", Name: "Liam Scott", Status: "At work", LastSeen: ago(90 * time.Minute)},
		{ID: "user16", Name: "Emma Davis", Status: "Available", LastSeen: ago(25 * time.Minute), Online: true},
		{ID: "user20", Name: "Daniel Thomas", Status: "In a meeting", LastSeen: ago(time.Hour)},
		{ID: "user21", Name: "Ava Robinson", Status: "Available", LastSeen: ago(40 * time.Minute), Online: true},
		{ID: "user23", Name: "Grace Hall", Status: "Out for lunch", LastSeen: ago(50 * time.Minute)},
	}

	// Fill in stable IDs for the messages that don't need to be
	// referenced by name above.
	for i := range messages {
		if messages[i].ID == "" {
			messages[i].ID = seedID(fmt.Sprintf("msg/%03d", i))
		}
	}

	return Fixture{Chats: chats, Messages: messages, Users: users}
}
