package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/rs/zerolog"
)

type mockFileRepo struct {
	links map[string]string
	err   error
}

func (m *mockFileRepo) PublicLink(ctx context.Context, fileID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	link, ok := m.links[fileID]
	if !ok {
		return "", errors.New("unknown file " + fileID)
	}
	return link, nil
}

func newNormalizeUsecase(profiles map[string]domain.Profile, files *mockFileRepo) *NormalizeUsecase {
	profileUC := NewProfileUsecase(newMockProfileCache(), &mockProfileSource{profiles: profiles}, zerolog.Nop())
	mentionUC := NewMentionUsecase(profileUC)
	if files == nil {
		return NewNormalizeUsecase(profileUC, mentionUC, nil, zerolog.Nop())
	}
	return NewNormalizeUsecase(profileUC, mentionUC, files, zerolog.Nop())
}

func TestNormalize_ResolvesAuthorAndMentions(t *testing.T) {
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice", AvatarURL: "https://example.com/alice.png"},
		"U222": {Username: "bob"},
	}, nil)

	payload, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID:  "U111",
		Text:      "hey <@U222>",
		ChannelID: "C1",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if payload.Username != "alice" {
		t.Errorf("Expected author 'alice', got '%s'", payload.Username)
	}
	if payload.AvatarURL != "https://example.com/alice.png" {
		t.Errorf("Avatar mismatch: got '%s'", payload.AvatarURL)
	}
	if payload.Text != "hey @bob" {
		t.Errorf("Expected 'hey @bob', got %q", payload.Text)
	}
}

func TestNormalize_AttachmentsAppendedInOrder(t *testing.T) {
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice"},
	}, nil)

	payload, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID:       "U111",
		Text:           "look",
		AttachmentURLs: []string{"https://a.test/1.png", "https://a.test/2.png"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "look\nhttps://a.test/1.png\nhttps://a.test/2.png"
	if payload.Text != expected {
		t.Errorf("Expected %q, got %q", expected, payload.Text)
	}
}

func TestNormalize_FileLinksAfterAttachments(t *testing.T) {
	files := &mockFileRepo{links: map[string]string{
		"F1": "https://files.test/F1",
		"F2": "https://files.test/F2",
	}}
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice"},
	}, files)

	payload, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID:       "U111",
		Text:           "files",
		AttachmentURLs: []string{"https://a.test/1.png"},
		FileIDs:        []string{"F1", "F2"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "files\nhttps://a.test/1.png\nhttps://files.test/F1\nhttps://files.test/F2"
	if payload.Text != expected {
		t.Errorf("Expected %q, got %q", expected, payload.Text)
	}
}

func TestNormalize_EmptyContentSuppressed(t *testing.T) {
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice"},
	}, nil)

	_, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID: "U111",
		Text:     "",
	})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("Expected ErrEmptyMessage, got %v", err)
	}
}

func TestNormalize_AttachmentOnlyMessageNotSuppressed(t *testing.T) {
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice"},
	}, nil)

	payload, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID:       "U111",
		Text:           "",
		AttachmentURLs: []string{"https://a.test/1.png"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payload.Text != "\nhttps://a.test/1.png" {
		t.Errorf("Unexpected text %q", payload.Text)
	}
}

func TestNormalize_AuthorLookupFailureAborts(t *testing.T) {
	uc := newNormalizeUsecase(map[string]domain.Profile{
		// author missing
		"U222": {Username: "bob"},
	}, nil)

	_, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID: "U111",
		Text:     "hey <@U222>",
	})
	if err == nil {
		t.Fatal("Expected error when author lookup fails")
	}
	if errors.Is(err, ErrEmptyMessage) {
		t.Fatal("Lookup failure must not be reported as suppression")
	}
}

func TestNormalize_FileShareFailureAborts(t *testing.T) {
	files := &mockFileRepo{err: errors.New("not allowed")}
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice"},
	}, files)

	_, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID: "U111",
		Text:     "doc",
		FileIDs:  []string{"F1"},
	})
	if err == nil {
		t.Fatal("Expected error when file sharing fails")
	}
}

func TestNormalize_NoFileRepoSkipsFiles(t *testing.T) {
	uc := newNormalizeUsecase(map[string]domain.Profile{
		"U111": {Username: "alice"},
	}, nil)

	payload, err := uc.Normalize(context.Background(), &domain.InboundMessage{
		AuthorID: "U111",
		Text:     "doc",
		FileIDs:  []string{"F1"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payload.Text != "doc" {
		t.Errorf("Expected file to be skipped, got %q", payload.Text)
	}
}
