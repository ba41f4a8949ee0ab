package explorer

import (
	"fmt"
	"strings"

	"explorer/internal/config"
	"explorer/internal/domain"
	svc "explorer/internal/domain/services/explorer"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validateName trims name in place and checks it is present and short enough.
// kind is "Folder" or "File" and only shapes the message.
func validateName(name *string, kind string, maxLen int) error {
	*name = strings.TrimSpace(*name)
	err := validation.Validate(*name,
		validation.Required.Error(fmt.Sprintf("%s name is required.", kind)),
		validation.RuneLength(1, maxLen).Error(fmt.Sprintf("%s name must be at most %d characters.", kind, maxLen)),
	)
	if err != nil {
		return domain.Invalid(err.Error())
	}
	return nil
}

// validateID checks an id taken from a request body
func validateID(id int64, message string) error {
	if err := validation.Validate(id, validation.Required.Error(message), validation.Min(int64(1)).Error(message)); err != nil {
		return domain.Invalid(err.Error())
	}
	return nil
}

// validateCreateFolderRequest validates a folder creation request
func validateCreateFolderRequest(req *svc.CreateFolderRequest) error {
	if err := validateName(&req.Name, "Folder", config.MaxFolderNameLength); err != nil {
		return err
	}
	if req.ParentID != nil {
		return validateID(*req.ParentID, "Invalid parent folder id.")
	}
	return nil
}

// validateUpdateFolderRequest validates a rename/move request
func validateUpdateFolderRequest(req *svc.UpdateFolderRequest) error {
	if req.IsEmpty() {
		return domain.Invalid("No updates provided.")
	}
	if req.Name != nil && *req.Name != "" {
		if err := validateName(req.Name, "Folder", config.MaxFolderNameLength); err != nil {
			return err
		}
	} else {
		req.Name = nil
	}
	if req.ParentID.Present && req.ParentID.Value != nil {
		return validateID(*req.ParentID.Value, "Invalid parent folder id.")
	}
	return nil
}

// validateCreateFileRequest validates a file creation request
func validateCreateFileRequest(req *svc.CreateFileRequest) error {
	if err := validateName(&req.Name, "File", config.MaxFileNameLength); err != nil {
		return err
	}
	return validateID(req.FolderID, "Invalid folder id.")
}

// validateUpdateFileRequest validates a file rename/move request
func validateUpdateFileRequest(req *svc.UpdateFileRequest) error {
	if req.IsEmpty() {
		return domain.Invalid("No updates provided.")
	}
	if req.Name != nil && *req.Name != "" {
		if err := validateName(req.Name, "File", config.MaxFileNameLength); err != nil {
			return err
		}
	} else {
		req.Name = nil
	}
	if req.FolderID != nil {
		return validateID(*req.FolderID, "Invalid folder id.")
	}
	return nil
}

// invalid wraps a validation failure from the models package as a ValidationError
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return domain.Invalid(err.Error())
}
