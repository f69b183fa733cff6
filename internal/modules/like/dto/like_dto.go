package dto

type ToggleLikeResponse struct {
	Success    bool `json:"success"`
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}
