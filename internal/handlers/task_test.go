package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartworkplace/assistant-api/internal/constants"
	"github.com/smartworkplace/assistant-api/internal/models"
	"github.com/smartworkplace/assistant-api/internal/repository"
	"github.com/smartworkplace/assistant-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, services.NewAnalyticsEngine())
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		FullName:     "Test User",
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, userID uint64) *models.Task {
	task := &models.Task{
		UserID:   userID,
		Title:    title,
		Priority: models.TaskPriorityMedium,
		Status:   models.TaskStatusPending,
		Tags:     models.TagList{},
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) setTaskIDParam(c *gin.Context, taskID uint64) {
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", taskID)}}
}

// TestCreateTask_Success tests creation with defaults
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("test@example.com")

	requestBody := map[string]interface{}{
		"title":    "Draft report",
		"priority": "high",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Draft report", response.Title)
	assert.Equal(suite.T(), models.TaskPriorityHigh, response.Priority)
	assert.Equal(suite.T(), models.TaskStatusPending, response.Status)
	assert.Equal(suite.T(), 1.0, response.EstimatedHours)
	assert.Nil(suite.T(), response.CompletedAt)
}

// TestCreateTask_MissingTitle tests creation without the required title
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	user := suite.createTestUser("test@example.com")

	requestBody := map[string]interface{}{
		"description": "no title here",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_Unauthorized tests creation without authentication
func (suite *TaskHandlerTestSuite) TestCreateTask_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tasks", bytes.NewReader([]byte(`{"title":"x"}`)))
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListTasks_Success tests successful task listing
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Test Task", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "tasks")
	assert.Contains(suite.T(), response, "pagination")

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)

	firstTask := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), task.Title, firstTask["title"])
}

// TestListTasks_ExcludesOtherOwners tests that listings are owner-scoped
func (suite *TaskHandlerTestSuite) TestListTasks_ExcludesOtherOwners() {
	user := suite.createTestUser("test@example.com")
	other := suite.createTestUser("other@example.com")
	suite.createTestTask("Mine", user.ID)
	suite.createTestTask("Theirs", other.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
	assert.Equal(suite.T(), "Mine", tasks[0].(map[string]interface{})["title"])
}

// TestGetTask_Success tests successful task retrieval
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Test Task", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, user.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID, response.ID)
	assert.Equal(suite.T(), task.Title, response.Title)
}

// TestGetTask_CrossOwner tests that foreign tasks look absent
func (suite *TaskHandlerTestSuite) TestGetTask_CrossOwner() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	task := suite.createTestTask("Secret", owner.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, intruder.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateTask_CompleteSetsTimestamp tests the completion side effect
func (suite *TaskHandlerTestSuite) TestUpdateTask_CompleteSetsTimestamp() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Finish me", user.ID)

	requestBody := map[string]interface{}{
		"status":       "completed",
		"actual_hours": 2.5,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, response.Status)
	assert.NotNil(suite.T(), response.CompletedAt)
	assert.Equal(suite.T(), 2.5, response.ActualHours)
}

// TestUpdateTask_InvalidPriority tests rejection of unknown enum values
func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidPriority() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Keep me", user.ID)

	requestBody := map[string]interface{}{
		"priority": "urgent",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Stored task is untouched
	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.Equal(suite.T(), models.TaskPriorityMedium, stored.Priority)
}

// TestUpdateTask_EmptyPatch tests rejection of a patch with no fields
func (suite *TaskHandlerTestSuite) TestUpdateTask_EmptyPatch() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Keep me", user.ID)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte(`{}`), user.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_NullDueDate tests clearing due_date with an explicit null
func (suite *TaskHandlerTestSuite) TestUpdateTask_NullDueDate() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Due someday", user.ID)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", []byte(`{"due_date": null}`), user.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.DueDate)
}

// TestDeleteTask_Success tests successful task deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Task to Delete", user.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Verify the row is gone
	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestDeleteTask_CrossOwner tests deletion of a foreign task
func (suite *TaskHandlerTestSuite) TestDeleteTask_CrossOwner() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	task := suite.createTestTask("Secret", owner.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, intruder.ID)
	suite.setTaskIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestGetAnalytics_Empty tests the zero-task snapshot
func (suite *TaskHandlerTestSuite) TestGetAnalytics_Empty() {
	user := suite.createTestUser("test@example.com")

	c, w := suite.createAuthContext("GET", "/api/analytics", nil, user.ID)

	suite.handler.GetAnalytics(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	stats := response["stats"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), stats["total_tasks"])
	assert.Nil(suite.T(), stats["avg_completion_time"])
	assert.Equal(suite.T(), float64(0), response["productivity_score"])

	trends := response["trends"].([]interface{})
	assert.Len(suite.T(), trends, 7)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
