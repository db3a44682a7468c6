package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type signupPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,schoolemail"`
	Role  string `json:"role" binding:"required,oneof=teacher student"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	Setup()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p signupPayload
	return Bind(c, &p)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("jane.doe@school.com"))
	assert.True(t, ValidEmail("a-b@mail.school.org"))
	assert.False(t, ValidEmail("jane@school"))
	assert.False(t, ValidEmail("not an email"))
	assert.False(t, ValidEmail("jane@school.info"))
}

func TestBindUsesJSONNamesAndTranslations(t *testing.T) {
	fields := bindBody(t, `{"email":"bad","role":"admin"}`)

	assert.Equal(t, "name is a required field", fields["name"])
	assert.Equal(t, "Please add a valid email", fields["email"])
	assert.Contains(t, fields["role"], "role must be one of")
}

func TestBindAcceptsValidPayload(t *testing.T) {
	assert.Nil(t, bindBody(t, `{"name":"Jane","email":"jane@school.com","role":"teacher"}`))
}

func TestBindReportsMalformedJSON(t *testing.T) {
	fields := bindBody(t, `{"name":`)
	assert.Equal(t, "request body must be valid JSON", fields["detail"])
}
