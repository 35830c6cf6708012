package dto_test

import (
	"encoding/json"
	"testing"

	"mernspace-auth/dto"
	"mernspace-auth/helper"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestRegisterUserDto(t *testing.T) {
	tests := []struct {
		name string
		in   dto.RegisterUserDto
		want []string
	}{
		{"valid", dto.RegisterUserDto{FirstName: "Rakesh", LastName: "K", Email: "r@mern.space", Password: "password1"}, nil},
		{"missing names", dto.RegisterUserDto{Email: "r@mern.space", Password: "password1"}, []string{"firstName", "lastName"}},
		{"bad email", dto.RegisterUserDto{FirstName: "R", LastName: "K", Email: "rakesh", Password: "password1"}, []string{"email"}},
		{"short password", dto.RegisterUserDto{FirstName: "R", LastName: "K", Email: "r@mern.space", Password: "pass"}, []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want, failedFields(t, helper.Validator.Struct(tt.in)))
		})
	}
}

func TestRegisterUserDto_NormalizesEmail(t *testing.T) {
	d := dto.RegisterUserDto{FirstName: "  Rakesh ", Email: "  Rakesh@Mern.Space "}
	d.Normalize()
	assert.Equal(t, "rakesh@mern.space", d.Email)
	assert.Equal(t, "Rakesh", d.FirstName)
}

func TestCreateUserDto_Role(t *testing.T) {
	base := dto.CreateUserDto{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "password1", Role: "manager"}
	assert.NoError(t, helper.Validator.Struct(base))

	base.Role = "superuser"
	assert.Equal(t, []string{"role"}, failedFields(t, helper.Validator.Struct(base)))
}

func TestUpdateTenantDTO_PartialAllowed(t *testing.T) {
	assert.NoError(t, helper.Validator.Struct(dto.UpdateTenantDTO{}))

	short := "x"
	assert.Equal(t, []string{"name"}, failedFields(t, helper.Validator.Struct(dto.UpdateTenantDTO{Name: &short})))
}

func TestUpdateUserDto_TenantID(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		set     bool
		want    *uint
		wantErr bool
	}{
		{name: "absent", body: `{"firstName":"A"}`},
		{name: "null", body: `{"tenantId":null}`, set: true},
		{name: "id", body: `{"tenantId":7}`, set: true, want: ptr(uint(7))},
		{name: "zero", body: `{"tenantId":0}`, wantErr: true},
		{name: "string", body: `{"tenantId":"7"}`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d dto.UpdateUserDto
			err := json.Unmarshal([]byte(tc.body), &d)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.set, d.TenantID.Set)
			assert.Equal(t, tc.want, d.TenantID.Value)
			assert.NoError(t, helper.Validator.Struct(&d))
		})
	}
}

func ptr[T any](v T) *T { return &v }
