package shared

// AggregateRoot 聚合根接口
// 聚合根是一致性边界的入口，所有修改都经由它进行，并负责记录领域事件
type AggregateRoot interface {
	// ID 返回聚合根的全局唯一标识
	ID() string

	// PullEvents 获取并清空聚合根记录的领域事件
	// 工作单元在同一事务内把这些事件写入 outbox 表
	PullEvents() []DomainEvent
}

// Entity 实体接口，通过标识判断相等性
type Entity interface {
	ID() string
}

// EventRecorder 聚合根内嵌的事件记录器
type EventRecorder struct {
	events []DomainEvent
}

// Record 记录一个领域事件
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 返回已记录事件的副本并清空列表，避免重复保存
func (r *EventRecorder) PullEvents() []DomainEvent {
	if len(r.events) == 0 {
		return nil
	}
	events := make([]DomainEvent, len(r.events))
	copy(events, r.events)
	r.events = nil
	return events
}
