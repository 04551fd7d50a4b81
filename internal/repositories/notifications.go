package repositories

import (
	"Keyo/internal/notifications"
	"Keyo/utils"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JsonObject is a jsonb column holding a flat object.
type JsonObject map[string]any

func (o JsonObject) Value() (driver.Value, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o)
}

func (o *JsonObject) Scan(value any) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*o = JsonObject{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}

	result := JsonObject{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return fmt.Errorf("decoding json column: %w", err)
	}
	*o = result
	return nil
}

type Notification struct {
	ModelBase

	recipientId uuid.UUID
	actorId     *uuid.UUID
	targetType  *notifications.TargetType
	targetId    *string

	notificationType notifications.Type
	title            string
	message          string
	clickUrl         *string
	deepLink         JsonObject
	extraData        JsonObject
	priority         notifications.Priority

	isRead      bool
	readAt      *time.Time
	isClicked   bool
	clickedAt   *time.Time
	pushSent    bool
	pushSentAt  *time.Time
	emailSent   bool
	emailSentAt *time.Time

	expiresAt *time.Time
}

func NewNotification(
	recipientId uuid.UUID,
	notificationType notifications.Type,
	title string,
	message string,
	priority notifications.Priority,
) *Notification {
	return &Notification{
		ModelBase:        NewModelBase(),
		recipientId:      recipientId,
		notificationType: notificationType,
		title:            title,
		message:          message,
		priority:         priority,
		deepLink:         JsonObject{},
		extraData:        JsonObject{},
	}
}

func (n *Notification) GetScanPointers() []any {
	return []any{
		&n.id,
		&n.auditCreatedAt,
		&n.auditUpdatedAt,
		&n.version,
		&n.recipientId,
		&n.actorId,
		&n.targetType,
		&n.targetId,
		&n.notificationType,
		&n.title,
		&n.message,
		&n.clickUrl,
		&n.deepLink,
		&n.extraData,
		&n.priority,
		&n.isRead,
		&n.readAt,
		&n.isClicked,
		&n.clickedAt,
		&n.pushSent,
		&n.pushSentAt,
		&n.emailSent,
		&n.emailSentAt,
		&n.expiresAt,
	}
}

func (n *Notification) RecipientId() uuid.UUID {
	return n.recipientId
}

func (n *Notification) ActorId() *uuid.UUID {
	return n.actorId
}

func (n *Notification) SetActorId(actorId *uuid.UUID) {
	n.actorId = actorId
}

func (n *Notification) TargetType() *notifications.TargetType {
	return n.targetType
}

func (n *Notification) TargetId() *string {
	return n.targetId
}

func (n *Notification) SetTarget(targetType notifications.TargetType, targetId string) {
	n.targetType = &targetType
	n.targetId = &targetId
}

func (n *Notification) Type() notifications.Type {
	return n.notificationType
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) ClickUrl() *string {
	return n.clickUrl
}

func (n *Notification) SetClickUrl(clickUrl *string) {
	n.clickUrl = clickUrl
}

func (n *Notification) DeepLink() JsonObject {
	return n.deepLink
}

func (n *Notification) SetDeepLink(link notifications.DeepLink) {
	n.deepLink = JsonObject{
		"screen": link.Screen,
		"params": link.Params,
	}
}

func (n *Notification) ExtraData() JsonObject {
	return n.extraData
}

func (n *Notification) SetExtraData(extraData map[string]any) {
	if extraData == nil {
		extraData = map[string]any{}
	}
	n.extraData = extraData
}

func (n *Notification) Priority() notifications.Priority {
	return n.priority
}

func (n *Notification) IsRead() bool {
	return n.isRead
}

func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

// MarkRead only records the first read.
func (n *Notification) MarkRead(now time.Time) {
	if n.isRead {
		return
	}

	n.isRead = true
	n.readAt = &now
	n.TrackChange("is_read", true)
	n.TrackChange("read_at", now)
}

func (n *Notification) IsClicked() bool {
	return n.isClicked
}

func (n *Notification) ClickedAt() *time.Time {
	return n.clickedAt
}

// MarkClicked records the first click and marks the notification read.
func (n *Notification) MarkClicked(now time.Time) {
	if !n.isClicked {
		n.isClicked = true
		n.clickedAt = &now
		n.TrackChange("is_clicked", true)
		n.TrackChange("clicked_at", now)
	}

	n.MarkRead(now)
}

func (n *Notification) PushSent() bool {
	return n.pushSent
}

func (n *Notification) PushSentAt() *time.Time {
	return n.pushSentAt
}

func (n *Notification) MarkPushSent(now time.Time) {
	n.pushSent = true
	n.pushSentAt = &now
	n.TrackChange("push_sent", true)
	n.TrackChange("push_sent_at", now)
}

func (n *Notification) EmailSent() bool {
	return n.emailSent
}

func (n *Notification) EmailSentAt() *time.Time {
	return n.emailSentAt
}

func (n *Notification) MarkEmailSent(now time.Time) {
	n.emailSent = true
	n.emailSentAt = &now
	n.TrackChange("email_sent", true)
	n.TrackChange("email_sent_at", now)
}

func (n *Notification) ExpiresAt() *time.Time {
	return n.expiresAt
}

func (n *Notification) SetExpiresAt(expiresAt *time.Time) {
	n.expiresAt = expiresAt
}

func (n *Notification) IsExpired(now time.Time) bool {
	return n.expiresAt != nil && n.expiresAt.Before(now)
}

type NotificationFilter struct {
	id           *uuid.UUID
	recipientId  *uuid.UUID
	types        []notifications.Type
	priority     *notifications.Priority
	isRead       *bool
	createdAfter *time.Time
	notExpiredAt *time.Time
	pagingInfo   *PagingInfo
	orderInfo    *OrderInfo
	searchFilter *SearchFilter
}

func NewNotificationFilter() NotificationFilter {
	return NotificationFilter{}
}

func (f NotificationFilter) Clone() NotificationFilter {
	return f
}

func (f NotificationFilter) Id(id uuid.UUID) NotificationFilter {
	filter := f.Clone()
	filter.id = &id
	return filter
}

func (f NotificationFilter) HasId() bool {
	return f.id != nil
}

func (f NotificationFilter) GetId() uuid.UUID {
	return utils.ZeroIfNil(f.id)
}

func (f NotificationFilter) RecipientId(recipientId uuid.UUID) NotificationFilter {
	filter := f.Clone()
	filter.recipientId = &recipientId
	return filter
}

func (f NotificationFilter) HasRecipientId() bool {
	return f.recipientId != nil
}

func (f NotificationFilter) GetRecipientId() uuid.UUID {
	return utils.ZeroIfNil(f.recipientId)
}

func (f NotificationFilter) Types(types ...notifications.Type) NotificationFilter {
	filter := f.Clone()
	filter.types = append([]notifications.Type(nil), types...)
	return filter
}

func (f NotificationFilter) HasTypes() bool {
	return len(f.types) > 0
}

func (f NotificationFilter) GetTypes() []notifications.Type {
	return f.types
}

func (f NotificationFilter) Priority(priority notifications.Priority) NotificationFilter {
	filter := f.Clone()
	filter.priority = &priority
	return filter
}

func (f NotificationFilter) HasPriority() bool {
	return f.priority != nil
}

func (f NotificationFilter) GetPriority() notifications.Priority {
	return utils.ZeroIfNil(f.priority)
}

func (f NotificationFilter) IsRead(isRead bool) NotificationFilter {
	filter := f.Clone()
	filter.isRead = &isRead
	return filter
}

func (f NotificationFilter) HasIsRead() bool {
	return f.isRead != nil
}

func (f NotificationFilter) GetIsRead() bool {
	return utils.ZeroIfNil(f.isRead)
}

func (f NotificationFilter) CreatedAfter(createdAfter time.Time) NotificationFilter {
	filter := f.Clone()
	filter.createdAfter = &createdAfter
	return filter
}

func (f NotificationFilter) HasCreatedAfter() bool {
	return f.createdAfter != nil
}

func (f NotificationFilter) GetCreatedAfter() time.Time {
	return utils.ZeroIfNil(f.createdAfter)
}

// NotExpiredAt keeps notifications without expiry or expiring after now.
func (f NotificationFilter) NotExpiredAt(now time.Time) NotificationFilter {
	filter := f.Clone()
	filter.notExpiredAt = &now
	return filter
}

func (f NotificationFilter) HasNotExpiredAt() bool {
	return f.notExpiredAt != nil
}

func (f NotificationFilter) GetNotExpiredAt() time.Time {
	return utils.ZeroIfNil(f.notExpiredAt)
}

func (f NotificationFilter) Pagination(page int, size int) NotificationFilter {
	filter := f.Clone()
	filter.pagingInfo = &PagingInfo{
		page: page,
		size: size,
	}
	return filter
}

func (f NotificationFilter) HasPagination() bool {
	return f.pagingInfo != nil
}

func (f NotificationFilter) GetPagingInfo() PagingInfo {
	return utils.ZeroIfNil(f.pagingInfo)
}

func (f NotificationFilter) Order(by string, direction string) NotificationFilter {
	filter := f.Clone()
	filter.orderInfo = &OrderInfo{
		orderBy:  by,
		orderDir: direction,
	}
	return filter
}

func (f NotificationFilter) HasOrder() bool {
	return f.orderInfo != nil
}

func (f NotificationFilter) GetOrderInfo() OrderInfo {
	return utils.ZeroIfNil(f.orderInfo)
}

func (f NotificationFilter) Search(searchFilter SearchFilter) NotificationFilter {
	filter := f.Clone()
	filter.searchFilter = &searchFilter
	return filter
}

func (f NotificationFilter) HasSearch() bool {
	return f.searchFilter != nil
}

func (f NotificationFilter) GetSearch() SearchFilter {
	return utils.ZeroIfNil(f.searchFilter)
}

// NotificationCounts backs the notification summary.
type NotificationCounts struct {
	Total            int
	Unread           int
	Recent           int
	RecentUnread     int
	ByType           map[notifications.Type]int
	UnreadByType     map[notifications.Type]int
	UnreadByPriority map[notifications.Priority]int
}

//go:generate mockgen -destination=./mocks/notification_repository.go -package=mocks Keyo/internal/repositories NotificationRepository
type NotificationRepository interface {
	List(ctx context.Context, filter NotificationFilter) ([]*Notification, int, error)
	Single(ctx context.Context, filter NotificationFilter) (*Notification, error)
	First(ctx context.Context, filter NotificationFilter) (*Notification, error)
	Insert(ctx context.Context, notification *Notification) error
	Update(ctx context.Context, notification *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, filter NotificationFilter, now time.Time) (int, error)
	Count(ctx context.Context, filter NotificationFilter) (int, error)
	Counts(ctx context.Context, recipientId uuid.UUID, now time.Time, recentSince time.Time) (*NotificationCounts, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error)
}
