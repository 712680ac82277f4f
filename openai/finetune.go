package openai

import "context"

const fineTunesPath = "fine-tunes"

// CreateFineTuneParam are the inputs to CreateFineTune.
type CreateFineTuneParam struct {
	// TrainingFile is the ID of an uploaded file with training data.
	// Required; see UploadFile.
	TrainingFile string `json:"training_file"`

	// ValidationFile is the ID of an uploaded file with validation data.
	// Train and validation data should be mutually exclusive.
	ValidationFile string `json:"validation_file,omitempty"`

	// Model is the base model to fine-tune: "ada", "babbage", "curie",
	// "davinci", or an earlier fine-tuned model.
	Model string `json:"model,omitempty"`

	// NEpochs is the number of full cycles through the training dataset.
	NEpochs int `json:"n_epochs,omitempty"`

	// BatchSize is the number of examples per forward/backward pass.
	BatchSize int `json:"batch_size,omitempty"`

	// LearningRateMultiplier scales the pretraining learning rate.
	LearningRateMultiplier float64 `json:"learning_rate_multiplier,omitempty"`

	// PromptLossWeight is the weight for loss on prompt tokens.
	PromptLossWeight float64 `json:"prompt_loss_weight,omitempty"`

	// ComputeClassificationMetrics computes accuracy and F-1 against the
	// validation set at the end of every epoch.
	ComputeClassificationMetrics bool `json:"compute_classification_metrics,omitempty"`

	// ClassificationNClasses is required for multiclass classification.
	ClassificationNClasses int `json:"classification_n_classes,omitempty"`

	// ClassificationPositiveClass is the positive class in binary
	// classification.
	ClassificationPositiveClass string `json:"classification_positive_class,omitempty"`

	// ClassificationBetas computes F-beta scores at the given betas.
	ClassificationBetas []float64 `json:"classification_betas,omitempty"`

	// Suffix is appended to the fine-tuned model's name.
	Suffix string `json:"suffix,omitempty"`
}

func (p *CreateFineTuneParam) validate() error {
	if p == nil || p.TrainingFile == "" {
		return ErrTrainingFileRequired
	}
	return nil
}

// HyperParams are the hyper parameters of a fine-tuning job.
type HyperParams struct {
	NEpochs                      int     `json:"n_epochs"`
	BatchSize                    int     `json:"batch_size"`
	LearningRateMultiplier       float64 `json:"learning_rate_multiplier"`
	PromptLossWeight             float64 `json:"prompt_loss_weight"`
	ComputeClassificationMetrics bool    `json:"compute_classification_metrics,omitempty"`
	ClassificationNClasses       int     `json:"classification_n_classes,omitempty"`
	ClassificationPositiveClass  string  `json:"classification_positive_class,omitempty"`
}

// FineTuneEvent is one event in a fine-tuning job's lifecycle.
type FineTuneEvent struct {
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// FineTune describes a fine-tuning job.
type FineTune struct {
	ID              string          `json:"id"`
	Object          string          `json:"object"`
	Model           string          `json:"model"`
	CreatedAt       int64           `json:"created_at"`
	Events          []FineTuneEvent `json:"events,omitempty"`
	FineTunedModel  *string         `json:"fine_tuned_model,omitempty"`
	Hyperparams     HyperParams     `json:"hyperparams"`
	OrganizationID  string          `json:"organization_id"`
	ResultFiles     []File          `json:"result_files"`
	ValidationFiles []File          `json:"validation_files"`
	TrainingFiles   []File          `json:"training_files"`
	Status          string          `json:"status"`
	UpdatedAt       int64           `json:"updated_at"`
}

// ListFineTunes is the response to a fine-tune listing request.
type ListFineTunes struct {
	Object string     `json:"object"`
	Data   []FineTune `json:"data"`
}

// ListFineTuneEvents is the response to an event listing request.
type ListFineTuneEvents struct {
	Object string          `json:"object"`
	Data   []FineTuneEvent `json:"data"`
}

// CreateFineTune starts a job that fine-tunes a model from an uploaded
// training file.
func (c *Client) CreateFineTune(ctx context.Context, param *CreateFineTuneParam) (*FineTune, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[CreateFineTuneParam, FineTune](ctx, c, fineTunesPath, param)
}

// ListFineTunes lists the organization's fine-tuning jobs.
func (c *Client) ListFineTunes(ctx context.Context) (*ListFineTunes, error) {
	return get[ListFineTunes](ctx, c, fineTunesPath)
}

// RetrieveFineTune gets info about a fine-tuning job.
func (c *Client) RetrieveFineTune(ctx context.Context, fineTuneID string) (*FineTune, error) {
	return get[FineTune](ctx, c, fineTunesPath+"/"+fineTuneID)
}

// CancelFineTune immediately cancels a fine-tuning job.
func (c *Client) CancelFineTune(ctx context.Context, fineTuneID string) (*FineTune, error) {
	return post[struct{}, FineTune](ctx, c, fineTunesPath+"/"+fineTuneID+"/cancel", nil)
}

// ListFineTuneEvents gets the status updates for a fine-tuning job.
func (c *Client) ListFineTuneEvents(ctx context.Context, fineTuneID string) (*ListFineTuneEvents, error) {
	return get[ListFineTuneEvents](ctx, c, fineTunesPath+"/"+fineTuneID+"/events")
}

// DeleteFineTuneModel deletes a fine-tuned model. The caller must have the
// Owner role in the organization.
func (c *Client) DeleteFineTuneModel(ctx context.Context, model string) (*Deleted, error) {
	return del[Deleted](ctx, c, modelsPath+"/"+model)
}
