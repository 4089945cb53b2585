package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/1Kunalvats9/chatx/internal/database"
	"github.com/1Kunalvats9/chatx/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSendMessage_RequiresFollow(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "alice")
	createUser(t, "bob")
	// No follow edge

	c, w := testContext(t, "POST", "/api/chat/messages", "alice",
		map[string]string{"receiverId": "bob", "content": "hi"})

	SendMessage(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var msgCount, notifCount int64
	database.DB.Model(&models.Message{}).Count(&msgCount)
	database.DB.Model(&models.Notification{}).Count(&notifCount)
	assert.Zero(t, msgCount, "forbidden send must not persist a message")
	assert.Zero(t, notifCount, "forbidden send must not emit a notification")
}

func TestSendMessage_Success(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "alice")
	createUser(t, "bob")
	follow(t, "alice", "bob")

	c, w := testContext(t, "POST", "/api/chat/messages", "alice",
		map[string]string{"receiverId": "bob", "content": "hi bob"})

	SendMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message models.Message `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response.Message.SenderID)
	assert.Equal(t, "bob", response.Message.ReceiverID)
	assert.Equal(t, "hi bob", response.Message.Content)

	// Exactly one MESSAGE notification targeting the receiver
	var notifications []models.Notification
	database.DB.Find(&notifications)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "bob", notifications[0].UserID)
	assert.Equal(t, "alice", notifications[0].ActorID)
	assert.Equal(t, models.NotificationTypeMessage, notifications[0].Type)
}

func TestSendMessage_EmptyContent(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "alice")
	createUser(t, "bob")
	follow(t, "alice", "bob")

	c, w := testContext(t, "POST", "/api/chat/messages", "alice",
		map[string]string{"receiverId": "bob", "content": ""})

	SendMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestSendMessage_UnknownReceiver(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "alice")

	c, w := testContext(t, "POST", "/api/chat/messages", "alice",
		map[string]string{"receiverId": "ghost", "content": "hello?"})

	SendMessage(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMessages_AscendingThread(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "alice")
	createUser(t, "bob")
	follow(t, "alice", "bob")
	follow(t, "bob", "alice")

	for _, send := range []struct{ from, to, content string }{
		{"alice", "bob", "hi"},
		{"bob", "alice", "hello"},
		{"alice", "bob", "how are you"},
	} {
		c, w := testContext(t, "POST", "/api/chat/messages", send.from,
			map[string]string{"receiverId": send.to, "content": send.content})
		SendMessage(c)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	c, w := testContext(t, "GET", "/api/chat/messages?userId=bob", "alice", nil)
	GetMessages(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Messages []models.Message `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Messages, 3)
	assert.Equal(t, "hi", response.Messages[0].Content)
	assert.Equal(t, "hello", response.Messages[1].Content)
	assert.Equal(t, "how are you", response.Messages[2].Content)
	for i := 1; i < len(response.Messages); i++ {
		assert.False(t, response.Messages[i].CreatedAt.Before(response.Messages[i-1].CreatedAt))
	}
}

func TestGetMessages_MissingUserIdParam(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "alice")

	c, w := testContext(t, "GET", "/api/chat/messages", "alice", nil)
	GetMessages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetConversations_GroupedAndAscending(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "me")
	createUser(t, "alice")
	createUser(t, "bob")
	follow(t, "me", "alice")
	follow(t, "me", "bob")
	follow(t, "alice", "me")

	for _, send := range []struct{ from, to, content string }{
		{"me", "alice", "a1"},
		{"me", "bob", "b1"},
		{"alice", "me", "a2"},
		{"me", "bob", "b2"},
	} {
		c, w := testContext(t, "POST", "/api/chat/messages", send.from,
			map[string]string{"receiverId": send.to, "content": send.content})
		SendMessage(c)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	c, w := testContext(t, "GET", "/api/chat/conversations", "me", nil)
	GetConversations(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Conversations map[string][]models.Message `json:"conversations"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.Conversations, 2)

	aliceThread := response.Conversations["alice"]
	assert.Equal(t, "a1", aliceThread[0].Content)
	assert.Equal(t, "a2", aliceThread[1].Content)

	bobThread := response.Conversations["bob"]
	assert.Equal(t, "b1", bobThread[0].Content)
	assert.Equal(t, "b2", bobThread[1].Content)

	// Last element of each bucket is its most recent message
	for _, thread := range response.Conversations {
		last := thread[len(thread)-1]
		for _, m := range thread {
			assert.False(t, m.CreatedAt.After(last.CreatedAt))
		}
	}
}

func TestGetContacts_OnlyFollowedUsers(t *testing.T) {
	SetupTestDB(t)
	createUser(t, "me")
	createUser(t, "followed")
	createUser(t, "stranger")
	follow(t, "me", "followed")

	c, w := testContext(t, "GET", "/api/chat/contacts", "me", nil)
	GetContacts(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Contacts []models.User `json:"contacts"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Contacts, 1)
	assert.Equal(t, "followed", response.Contacts[0].ID)
}
